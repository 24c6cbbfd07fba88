package wordcloud

import (
	"fmt"
	"strings"
)

// Options controls layout and rendering.
type Options struct {
	Width           int
	Height          int
	BackgroundColor string
	FontPath        string

	// MaxWords caps how many distinct words are laid out.
	MaxWords int
	// MinWordLength drops shorter tokens (in runes) when counting.
	MinWordLength int
	MinFontSize   int
	// MaxFontSize is the size of the most frequent word. Zero derives it
	// from a trial layout of the two most frequent words.
	MaxFontSize int
	FontStep    int
	// PreferHorizontal is the probability that a word is drawn unrotated.
	PreferHorizontal float64
	// RelativeScaling weighs word frequency against rank when sizing words.
	RelativeScaling float64
	Margin          int
	RandomSeed      int64
}

// DefaultOptions returns a 3840x2160 white canvas.
func DefaultOptions() Options {
	return Options{
		Width:            3840,
		Height:           2160,
		BackgroundColor:  "white",
		MaxWords:         200,
		MinWordLength:    2,
		MinFontSize:      4,
		MaxFontSize:      0,
		FontStep:         1,
		PreferHorizontal: 0.9,
		RelativeScaling:  0.5,
		Margin:           2,
		RandomSeed:       1,
	}
}

// Validate checks that the options can produce an image.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image size must be positive, got: %dx%d", o.Width, o.Height)
	}
	if strings.TrimSpace(o.BackgroundColor) == "" {
		return fmt.Errorf("background color is required")
	}
	if _, err := ParseColor(o.BackgroundColor); err != nil {
		return err
	}
	if o.MaxWords <= 0 {
		return fmt.Errorf("max_words must be positive, got: %d", o.MaxWords)
	}
	if o.MinFontSize <= 0 {
		return fmt.Errorf("min_font_size must be positive, got: %d", o.MinFontSize)
	}
	if o.MaxFontSize != 0 && o.MaxFontSize < o.MinFontSize {
		return fmt.Errorf("max_font_size must be at least min_font_size, got: %d", o.MaxFontSize)
	}
	if o.FontStep <= 0 {
		return fmt.Errorf("font_step must be positive, got: %d", o.FontStep)
	}
	if o.PreferHorizontal < 0 || o.PreferHorizontal > 1 {
		return fmt.Errorf("prefer_horizontal must be between 0 and 1, got: %f", o.PreferHorizontal)
	}
	if o.RelativeScaling < 0 || o.RelativeScaling > 1 {
		return fmt.Errorf("relative_scaling must be between 0 and 1, got: %f", o.RelativeScaling)
	}
	if o.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got: %d", o.Margin)
	}
	return nil
}
