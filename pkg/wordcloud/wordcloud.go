// Package wordcloud lays out words on a canvas with sizes proportional to
// their frequency and renders the result as an image.
//
// Words are shaped with HarfBuzz through reshape.Shaper, so Persian letters
// take their joined forms and right-to-left words are drawn in visual order.
// Layout follows the classic greedy approach: words are placed from most to
// least frequent; each word is tried at a random free position (found with a
// summed-area table over an occupancy grid) and shrunk until it fits or falls
// below the minimum font size.
package wordcloud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"

	"chat_stats/pkg/reshape"

	"github.com/disintegration/imaging"
)

// PlacedWord describes one word drawn on the canvas.
type PlacedWord struct {
	Word     string
	Count    int
	FontSize int
	Rotated  bool
	Bounds   image.Rectangle
	Color    color.RGBA
}

// Cloud is a rendered word cloud.
type Cloud struct {
	img    *image.RGBA
	placed []PlacedWord
}

// Image returns the rendered canvas.
func (c *Cloud) Image() *image.RGBA { return c.img }

// Words returns the placed words in placement order.
func (c *Cloud) Words() []PlacedWord { return c.placed }

// Save writes the cloud to path as PNG, replacing any existing file.
func (c *Cloud) Save(path string) error {
	if err := imaging.Save(c.img, path); err != nil {
		return fmt.Errorf("failed to save word cloud: %w", err)
	}
	return nil
}

// Encode writes the cloud to w as PNG.
func (c *Cloud) Encode(w io.Writer) error {
	return imaging.Encode(w, c.img, imaging.PNG)
}

// Renderer draws word clouds with a fixed font and options.
type Renderer struct {
	opts       Options
	shaper     *reshape.Shaper
	background color.RGBA
}

// New loads the font at opts.FontPath and validates opts.
func New(opts Options) (*Renderer, error) {
	slog.Debug("wordcloud_font_load", "path", opts.FontPath)
	data, err := os.ReadFile(opts.FontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return NewWithFont(opts, data)
}

// NewWithFont uses the given TrueType/OpenType font data.
func NewWithFont(opts Options, fontData []byte) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bg, err := ParseColor(opts.BackgroundColor)
	if err != nil {
		return nil, err
	}
	shaper, err := reshape.NewShaper(fontData)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		opts:       opts,
		shaper:     shaper,
		background: bg,
	}, nil
}

// Shaper returns the shaper used to draw words.
func (r *Renderer) Shaper() *reshape.Shaper { return r.shaper }

// Generate counts the words in text and renders them.
func (r *Renderer) Generate(text string) (*Cloud, error) {
	return r.GenerateFromFrequencies(ProcessText(text, r.opts.MinWordLength))
}

// GenerateFromFrequencies renders the given counts. Counts need not be sorted.
// With no words the result is a blank canvas.
func (r *Renderer) GenerateFromFrequencies(counts []WordCount) (*Cloud, error) {
	words := make([]WordCount, 0, len(counts))
	for _, wc := range counts {
		if wc.Count > 0 && wc.Word != "" {
			words = append(words, wc)
		}
	}
	SortCounts(words)
	if len(words) > r.opts.MaxWords {
		words = words[:r.opts.MaxWords]
	}

	if len(words) == 0 {
		slog.Warn("wordcloud_no_words")
		return &Cloud{img: r.canvas()}, nil
	}

	fontSize := r.opts.MaxFontSize
	if fontSize == 0 {
		fontSize = r.initialFontSize(words)
	}

	slog.Debug("wordcloud_layout",
		"words", len(words),
		"font_size", fontSize,
		"width", r.opts.Width,
		"height", r.opts.Height)

	cloud := r.layout(words, fontSize)
	slog.Info("wordcloud_rendered", "placed", len(cloud.placed), "candidates", len(words))
	return cloud, nil
}

// initialFontSize runs a trial layout of the two most frequent words at the
// canvas height and returns the harmonic mean of their final sizes.
func (r *Renderer) initialFontSize(words []WordCount) int {
	if len(words) == 1 {
		return r.opts.Height
	}
	trial := r.layout(words[:2], r.opts.Height)
	if len(trial.placed) == 0 {
		return r.opts.Height
	}
	if len(trial.placed) == 1 {
		return trial.placed[0].FontSize
	}
	a := float64(trial.placed[0].FontSize)
	b := float64(trial.placed[1].FontSize)
	return int(2 * a * b / (a + b))
}

func (r *Renderer) canvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: r.background}, image.Point{}, draw.Src)
	return img
}

func (r *Renderer) layout(words []WordCount, fontSize int) *Cloud {
	rng := rand.New(rand.NewSource(r.opts.RandomSeed))
	img := r.canvas()
	grid := newOccupancy(r.opts.Width, r.opts.Height)
	cloud := &Cloud{img: img}

	maxCount := float64(words[0].Count)
	lastFreq := 1.0
	rs := r.opts.RelativeScaling

	for _, wc := range words {
		freq := float64(wc.Count) / maxCount
		if rs != 0 {
			fontSize = int(math.Round((rs*(freq/lastFreq) + (1 - rs)) * float64(fontSize)))
		}

		rotate := rng.Float64() >= r.opts.PreferHorizontal
		triedOther := false
		var pos image.Point
		found := false
		for fontSize >= r.opts.MinFontSize {
			w, h := r.measure(wc.Word, fontSize)
			if rotate {
				w, h = h, w
			}
			if w > 0 && h > 0 {
				pos, found = grid.find(w+2*r.opts.Margin, h+2*r.opts.Margin, rng)
				if found {
					break
				}
			}
			if !triedOther && r.opts.PreferHorizontal < 1 {
				rotate = !rotate
				triedOther = true
				continue
			}
			fontSize -= r.opts.FontStep
			rotate = rng.Float64() >= r.opts.PreferHorizontal
		}
		if fontSize < r.opts.MinFontSize || !found {
			break
		}

		mask := r.render(wc.Word, fontSize, rotate)
		at := pos.Add(image.Pt(r.opts.Margin, r.opts.Margin))
		col := randomColor(rng)
		rect := image.Rectangle{Min: at, Max: at.Add(mask.Bounds().Size())}
		draw.DrawMask(img, rect, &image.Uniform{C: col}, image.Point{}, mask, mask.Bounds().Min, draw.Over)
		grid.mark(mask, at)

		cloud.placed = append(cloud.placed, PlacedWord{
			Word:     wc.Word,
			Count:    wc.Count,
			FontSize: fontSize,
			Rotated:  rotate,
			Bounds:   rect,
			Color:    col,
		})
		lastFreq = freq
	}
	return cloud
}

// measure returns the ink box size of word at size, unrotated.
func (r *Renderer) measure(word string, size int) (int, int) {
	box := r.shaper.Shape(word, size).Bounds()
	return box.Dx(), box.Dy()
}

// render rasterizes the shaped word into an alpha mask cropped to its ink box.
func (r *Renderer) render(word string, size int, rotate bool) *image.Alpha {
	mask := r.shaper.Shape(word, size).Mask()
	if !rotate {
		return mask
	}

	rotated := imaging.Rotate90(mask)
	out := image.NewAlpha(rotated.Bounds())
	draw.Draw(out, out.Bounds(), rotated, rotated.Bounds().Min, draw.Src)
	return out
}
