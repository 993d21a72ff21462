package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/plus3/tieney/game"
)

var (
	Background = color.RGBA{15, 15, 10, 255}
	hudColor   = color.RGBA{200, 200, 190, 255}
)

// Renderer draws every drawable entity and an optional HUD.
type Renderer struct {
	textures *TextureManager
	face     font.Face
	ShowHUD  bool
}

func NewRenderer(textures *TextureManager) *Renderer {
	return &Renderer{
		textures: textures,
		face:     basicfont.Face7x13,
		ShowHUD:  true,
	}
}

func (r *Renderer) Draw(screen *ebiten.Image, world *game.World) {
	screen.Fill(Background)

	for d := range world.Drawables() {
		if d.Renderable.DestW == 0 || d.Renderable.DestH == 0 {
			continue
		}
		tex := r.textures.Get(d.Renderable.TexName)
		src := tex.SubImage(SourceRect(d.Renderable)).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM = SpriteGeoM(d)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(src, op)
	}

	if r.ShowHUD {
		lineHeight := r.face.Metrics().Height.Ceil()
		for i, line := range HUDLines(world.Frames(), world.Population(), world.Stats()) {
			text.Draw(screen, line, r.face, 8, 16+i*lineHeight, hudColor)
		}
	}
}

// HUDLines formats the frame counter, population and lifecycle counters.
func HUDLines(frames uint64, pop game.Population, stats game.SpawnStats) []string {
	return []string{
		fmt.Sprintf("frame %d  resets %d", frames, stats.Resets),
		fmt.Sprintf("asteroids %d  missiles %d  smoke %d", pop.Asteroids, pop.Missiles, pop.Smoke),
		fmt.Sprintf("rejected: missiles %d  smoke %d", stats.MissilesRejected, stats.SmokeRejected),
	}
}
