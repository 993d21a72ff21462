package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tieney/ecs"
	"github.com/plus3/tieney/ecs/debugui"
	debugui_ebiten "github.com/plus3/tieney/ecs/debugui/ebiten"
)

type Counter struct {
	Value int
}

type CounterSystem struct {
	Counters ecs.Query[struct{ *Counter }]
}

func (s *CounterSystem) Execute(frame *ecs.UpdateFrame) {
	for c := range s.Counters.Values() {
		c.Value++
	}
}

// Game implements ebiten.Game and draws a debug overlay over an ECS world.
type Game struct {
	scheduler *ecs.Scheduler
	overlay   *debugui.Overlay
	backend   *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	g.scheduler.Once(1.0 / 60.0)

	// The overlay renders between BeginFrame and EndFrame
	g.backend.BeginFrame()
	g.overlay.Update(1.0 / 60.0)
	g.backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Counter](registry)
	storage := ecs.NewStorage(registry)
	for range 10 {
		storage.Spawn(Counter{})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CounterSystem{})

	overlay := debugui.NewOverlay(storage, scheduler)
	overlay.AddWindow(func() {
		imgui.Begin("Debug Window")
		imgui.Text("Hello from ECS!")
		imgui.End()
	})

	game := &Game{
		scheduler: scheduler,
		overlay:   overlay,
		backend:   backend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
