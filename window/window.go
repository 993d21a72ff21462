// Package window runs a game.World in an ebiten window.
package window

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/tieney/config"
	"github.com/plus3/tieney/ecs/debugui"
	debugui_ebiten "github.com/plus3/tieney/ecs/debugui/ebiten"
	"github.com/plus3/tieney/game"
	"github.com/plus3/tieney/render"
)

// Game implements ebiten.Game around a world.
type Game struct {
	world    *game.World
	keys     game.KeyState
	renderer *render.Renderer
	screen   config.ScreenConfig
	input    KeyReader
	logger   *slog.Logger

	overlay *debugui.Overlay
	backend *debugui_ebiten.ImguiBackend
}

type Option func(*Game)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithDebugOverlay draws the ImGui inspector over the game.
func WithDebugOverlay() Option {
	return func(g *Game) {
		g.backend = debugui_ebiten.NewImguiBackend(g.screen.Title, g.screen.Width, g.screen.Height)
		g.overlay = debugui.NewOverlay(g.world.Storage(), g.world.Scheduler())
	}
}

// New builds the front-end. keys must be the key state the world reads.
func New(world *game.World, keys game.KeyState, renderer *render.Renderer, screen config.ScreenConfig, opts ...Option) *Game {
	g := &Game{
		world:    world,
		keys:     keys,
		renderer: renderer,
		screen:   screen,
		input:    ebitenKeys{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) Update() error {
	if g.input.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.overlay != nil && g.overlay.InputState().WantCaptureKeyboard {
		releaseKeys(g.keys)
	} else {
		syncKeys(g.input, g.keys)
	}

	g.world.Tick()

	if g.overlay != nil {
		g.backend.BeginFrame()
		g.overlay.Update(1.0 / game.TickRate)
		g.backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world)

	if g.overlay != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.screen.Width, g.screen.Height
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.screen.Width, g.screen.Height)
	ebiten.SetWindowTitle(g.screen.Title)
	ebiten.SetTPS(g.screen.TPS)

	g.logger.Info("window opened", "width", g.screen.Width, "height", g.screen.Height, "debug", g.overlay != nil)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	g.logger.Info("window closed", "frames", g.world.Frames())
	return nil
}
