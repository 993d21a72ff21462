package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/tieney/game"
)

// SourceRect selects the current animation frame from a horizontal strip.
func SourceRect(r game.Renderable) image.Rectangle {
	x := int(r.Frame * r.SourceW)
	return image.Rect(x, 0, x+int(r.SourceW), int(r.SourceH))
}

// SpriteGeoM maps the source rect onto a DestW x DestH rectangle centred on
// the entity and rotated clockwise by Renderable.Rot degrees about its centre.
func SpriteGeoM(d game.Drawable) ebiten.GeoM {
	r := d.Renderable

	var geo ebiten.GeoM
	if r.SourceW > 0 && r.SourceH > 0 {
		geo.Scale(float64(r.DestW)/float64(r.SourceW), float64(r.DestH)/float64(r.SourceH))
	}
	geo.Translate(-float64(r.DestW)/2, -float64(r.DestH)/2)
	geo.Rotate(r.Rot * math.Pi / 180)
	geo.Translate(d.Position.X, d.Position.Y)
	return geo
}
