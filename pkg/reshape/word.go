package reshape

import (
	"image"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Word is a shaped word. Coordinates are relative to the pen origin on the
// baseline, with y growing down.
type Word struct {
	Text string
	Size int
	RTL  bool

	runs []shaping.Output // visual order
}

// Glyphs returns the glyph IDs in visual order, left to right.
func (w Word) Glyphs() []font.GID {
	var ids []font.GID
	for _, run := range w.runs {
		for _, g := range run.Glyphs {
			ids = append(ids, g.GlyphID)
		}
	}
	return ids
}

// Bounds returns the ink box of the word.
func (w Word) Bounds() image.Rectangle {
	var (
		box   fixed.Rectangle26_6
		found bool
		pen   fixed.Int26_6
	)
	for _, run := range w.runs {
		for _, g := range run.Glyphs {
			if g.Width != 0 && g.Height != 0 {
				left := pen + g.XOffset + g.XBearing
				top := -(g.YOffset + g.YBearing)
				r := fixed.Rectangle26_6{
					Min: fixed.Point26_6{X: min(left, left+g.Width), Y: min(top, top-g.Height)},
					Max: fixed.Point26_6{X: max(left, left+g.Width), Y: max(top, top-g.Height)},
				}
				if found {
					box = box.Union(r)
				} else {
					box, found = r, true
				}
			}
			pen += g.Advance
		}
	}
	if !found {
		return image.Rectangle{}
	}
	return image.Rect(box.Min.X.Floor(), box.Min.Y.Floor(), box.Max.X.Ceil(), box.Max.Y.Ceil())
}

// Mask rasterizes the word into an alpha mask the size of its ink box.
func (w Word) Mask() *image.Alpha {
	b := w.Bounds()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Empty() {
		return mask
	}

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	originX := -float32(b.Min.X)
	originY := -float32(b.Min.Y)
	var pen float32
	for _, run := range w.runs {
		scale := toFloat(run.Size) / float32(run.Face.Upem())
		for _, g := range run.Glyphs {
			if outline, ok := run.Face.GlyphData(g.GlyphID).(font.GlyphOutline); ok {
				x := originX + pen + toFloat(g.XOffset)
				y := originY - toFloat(g.YOffset)
				addOutline(z, outline, scale, x, y)
			}
			pen += toFloat(g.Advance)
		}
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// addOutline adds the glyph contours with their origin at (x, y). Font units
// grow up, so y is flipped.
func addOutline(z *vector.Rasterizer, outline font.GlyphOutline, scale, x, y float32) {
	pt := func(p ot.SegmentPoint) (float32, float32) {
		return x + p.X*scale, y - p.Y*scale
	}
	open := false
	for _, s := range outline.Segments {
		switch s.Op {
		case ot.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case ot.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
