// Package render draws a game.World onto an ebiten screen.
package render

import (
	"errors"
	"fmt"
	"image/color"
	_ "image/png"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/tieney/game"
)

// LoaderFunc decodes the image file at path.
type LoaderFunc func(path string) (*ebiten.Image, error)

func loadFile(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

// TextureManager loads each texture once and caches it by name. Names are
// resolved relative to the asset directory. Textures whose file is missing
// are replaced by a generated placeholder shape.
type TextureManager struct {
	dir         string
	cache       map[string]*ebiten.Image
	load        LoaderFunc
	placeholder func(name string) *ebiten.Image
	logger      *slog.Logger
}

func NewTextureManager(dir string, logger *slog.Logger) *TextureManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextureManager{
		dir:         dir,
		cache:       make(map[string]*ebiten.Image),
		load:        loadFile,
		placeholder: Placeholder,
		logger:      logger,
	}
}

// Preload loads every named texture. Missing files fall back to
// placeholders; any other failure is returned.
func (tm *TextureManager) Preload(names []string) error {
	var errs []error
	for _, name := range names {
		if _, ok := tm.cache[name]; ok {
			continue
		}
		img, err := tm.loadOrPlaceholder(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tm.cache[name] = img
	}
	return errors.Join(errs...)
}

// Get returns the cached texture, loading it on first use. It never
// returns nil; unreadable textures are drawn as placeholders.
func (tm *TextureManager) Get(name string) *ebiten.Image {
	if img, ok := tm.cache[name]; ok {
		return img
	}

	img, err := tm.loadOrPlaceholder(name)
	if err != nil {
		tm.logger.Warn("texture unreadable, using placeholder", "texture", name, "error", err)
		img = tm.placeholder(name)
	}
	tm.cache[name] = img
	return img
}

// Len returns the number of cached textures.
func (tm *TextureManager) Len() int {
	return len(tm.cache)
}

func (tm *TextureManager) loadOrPlaceholder(name string) (*ebiten.Image, error) {
	img, err := tm.load(filepath.Join(tm.dir, name))
	if err == nil {
		return img, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		tm.logger.Debug("texture missing, using placeholder", "texture", name)
		return tm.placeholder(name), nil
	}
	return nil, fmt.Errorf("loading texture %s: %w", name, err)
}

// Placeholder draws a stand-in shape sized like the texture's source rect.
func Placeholder(name string) *ebiten.Image {
	switch name {
	case game.TexShip:
		img := ebiten.NewImage(32, 32)
		hull := color.RGBA{230, 230, 255, 255}
		vector.StrokeLine(img, 16, 1, 31, 31, 2, hull, true)
		vector.StrokeLine(img, 31, 31, 1, 31, 2, hull, true)
		vector.StrokeLine(img, 1, 31, 16, 1, 2, hull, true)
		return img
	case game.TexRock:
		img := ebiten.NewImage(32, 32)
		vector.StrokeRect(img, 2, 2, 28, 28, 2, color.RGBA{160, 150, 130, 255}, false)
		return img
	case game.TexMissile:
		img := ebiten.NewImage(24, 8)
		vector.DrawFilledRect(img, 0, 2, 24, 4, color.RGBA{255, 200, 80, 255}, false)
		return img
	case game.TexSmoke:
		img := ebiten.NewImage(16, 16)
		vector.DrawFilledCircle(img, 8, 8, 7, color.RGBA{190, 190, 190, 200}, true)
		return img
	}

	img := ebiten.NewImage(16, 16)
	img.Fill(color.RGBA{255, 0, 255, 255})
	return img
}
