package wordcloud

import (
	"image"
	"math/rand"
)

// cellSize is the side, in pixels, of one occupancy cell.
const cellSize = 4

// occupancy tracks which parts of the canvas already hold ink, on a coarse
// grid, and answers "where does a w×h box fit" with a summed-area table.
type occupancy struct {
	width, height int // canvas size in pixels
	cols, rows    int
	cells         []uint8
	sums          []int32 // (cols+1)*(rows+1)
}

func newOccupancy(width, height int) *occupancy {
	cols := (width + cellSize - 1) / cellSize
	rows := (height + cellSize - 1) / cellSize
	o := &occupancy{
		width:  width,
		height: height,
		cols:   cols,
		rows:   rows,
		cells:  make([]uint8, cols*rows),
		sums:   make([]int32, (cols+1)*(rows+1)),
	}
	return o
}

func (o *occupancy) rebuild() {
	stride := o.cols + 1
	for y := 0; y < o.rows; y++ {
		var row int32
		for x := 0; x < o.cols; x++ {
			row += int32(o.cells[y*o.cols+x])
			o.sums[(y+1)*stride+x+1] = o.sums[y*stride+x+1] + row
		}
	}
}

// free reports whether cells [cx, cx+cw) × [cy, cy+ch) are empty.
func (o *occupancy) free(cx, cy, cw, ch int) bool {
	stride := o.cols + 1
	a := o.sums[cy*stride+cx]
	b := o.sums[cy*stride+cx+cw]
	c := o.sums[(cy+ch)*stride+cx]
	d := o.sums[(cy+ch)*stride+cx+cw]
	return d-b-c+a == 0
}

// find picks, uniformly at random, a top-left pixel position where a box of
// w×h pixels lies entirely on free cells and inside the canvas.
func (o *occupancy) find(w, h int, rng *rand.Rand) (image.Point, bool) {
	if w > o.width || h > o.height {
		return image.Point{}, false
	}
	cw := (w + cellSize - 1) / cellSize
	ch := (h + cellSize - 1) / cellSize
	maxX := (o.width - w) / cellSize
	maxY := (o.height - h) / cellSize
	if maxX+cw > o.cols {
		maxX = o.cols - cw
	}
	if maxY+ch > o.rows {
		maxY = o.rows - ch
	}
	if maxX < 0 || maxY < 0 {
		return image.Point{}, false
	}

	hits := 0
	for cy := 0; cy <= maxY; cy++ {
		for cx := 0; cx <= maxX; cx++ {
			if o.free(cx, cy, cw, ch) {
				hits++
			}
		}
	}
	if hits == 0 {
		return image.Point{}, false
	}

	pick := rng.Intn(hits)
	for cy := 0; cy <= maxY; cy++ {
		for cx := 0; cx <= maxX; cx++ {
			if !o.free(cx, cy, cw, ch) {
				continue
			}
			if pick == 0 {
				return image.Pt(cx*cellSize, cy*cellSize), true
			}
			pick--
		}
	}
	return image.Point{}, false
}

// mark records every inked pixel of mask drawn with its origin at at.
func (o *occupancy) mark(mask *image.Alpha, at image.Point) {
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 {
				continue
			}
			px := at.X + x - b.Min.X
			py := at.Y + y - b.Min.Y
			if px < 0 || py < 0 || px >= o.width || py >= o.height {
				continue
			}
			o.cells[(py/cellSize)*o.cols+px/cellSize] = 1
		}
	}
	o.rebuild()
}
