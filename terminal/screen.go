package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tieney/game"
)

var (
	styleShip    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleRock    = tcell.StyleDefault.Foreground(tcell.ColorTan)
	styleMissile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSmoke   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// headings are the ship glyphs for eight 45 degree sectors, clockwise from up.
var headings = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Glyph returns the cell drawn for an entity.
func Glyph(d game.Drawable) (rune, tcell.Style) {
	switch d.Renderable.TexName {
	case game.TexShip:
		sector := int(game.NormalizeDegrees(d.Position.Rot+22.5)/45) % len(headings)
		return headings[sector], styleShip
	case game.TexRock:
		return '#', styleRock
	case game.TexMissile:
		return '*', styleMissile
	case game.TexSmoke:
		return '.', styleSmoke
	}
	return '?', tcell.StyleDefault
}

// Cell maps a world position onto a cols x rows grid.
func Cell(pos game.Position, rules game.Rules, cols, rows int) (int, int) {
	col := int(pos.X / rules.WorldWidth * float64(cols))
	row := int(pos.Y / rules.WorldHeight * float64(rows))
	return min(max(col, 0), cols-1), min(max(row, 0), rows-1)
}

// Draw renders the world into every row but the last, which holds the
// status line. Smoke is drawn first so it never hides the ship.
func Draw(screen tcell.Screen, world *game.World) {
	screen.Clear()
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 1 {
		screen.Show()
		return
	}

	rules := world.Rules()
	var fore []game.Drawable
	for d := range world.Drawables() {
		if d.Renderable.TexName != game.TexSmoke {
			fore = append(fore, d)
			continue
		}
		drawCell(screen, d, rules, cols, rows-1)
	}
	for _, d := range fore {
		drawCell(screen, d, rules, cols, rows-1)
	}

	drawStatus(screen, StatusLine(world.Frames(), world.Population(), world.Stats()), rows-1, cols)
	screen.Show()
}

func drawCell(screen tcell.Screen, d game.Drawable, rules game.Rules, cols, rows int) {
	x, y := Cell(d.Position, rules, cols, rows)
	r, style := Glyph(d)
	screen.SetContent(x, y, r, nil, style)
}

func drawStatus(screen tcell.Screen, line string, row, cols int) {
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		screen.SetContent(x, row, r, nil, styleStatus)
	}
}

// StatusLine summarises the world for the bottom row.
func StatusLine(frames uint64, pop game.Population, stats game.SpawnStats) string {
	return fmt.Sprintf(" frame %d | missiles %d | smoke %d | resets %d | w/a/d move, space fire, q quit",
		frames, pop.Missiles, pop.Smoke, stats.Resets)
}
