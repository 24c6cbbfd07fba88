// Package reshape turns words into drawable glyph runs.
//
// Shaping is done by the HarfBuzz port in go-text/typesetting: Arabic-script
// letters get their contextual forms and ligatures from the font's own GSUB
// tables, and right-to-left runs come back in visual order. Word glyphs are
// rasterized from their outlines into alpha masks.
package reshape

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

var persian = language.NewLanguage("fa")

// Shaper shapes words with a single font. It is not safe for concurrent use.
type Shaper struct {
	face      *font.Face
	shaper    shaping.HarfbuzzShaper
	segmenter shaping.Segmenter
}

// NewShaper parses TrueType or OpenType font data.
func NewShaper(fontData []byte) (*Shaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Shaper{face: face}, nil
}

// Shape lays out word at size pixels. Runs of mixed direction are split by
// the bidi algorithm and returned left to right.
func (s *Shaper) Shape(word string, size int) Word {
	text := []rune(word)
	rtl := IsRTL(word)

	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: dir,
		Face:      s.face,
		Size:      fixed.I(size),
		Language:  persian,
	}

	var runs []shaping.Output
	if len(text) > 0 {
		for _, in := range s.segmenter.Split(input, singleFace{s.face}) {
			runs = append(runs, s.shaper.Shape(in))
		}
	}
	// Runs come back in logical order; an RTL word reads from the last one.
	if rtl {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}

	return Word{Text: word, Size: size, RTL: rtl, runs: runs}
}

// HasGlyph reports whether the font maps r to a glyph.
func (s *Shaper) HasGlyph(r rune) bool {
	_, ok := s.face.NominalGlyph(r)
	return ok
}

type singleFace struct {
	face *font.Face
}

func (f singleFace) ResolveFace(rune) *font.Face { return f.face }

// IsRTL reports whether the first strong character of s is right-to-left.
func IsRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return true
		case bidi.L:
			return false
		}
	}
	return false
}
