package compose

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// Font sizes in points at 72 DPI, tuned for the 1080x1920 canvas.
const (
	codeFontSize     = 48
	questionFontSize = 55
	headerFontSize   = 40
	terminalFontSize = 42
)

// FontSet holds the faces one compositor draws with. Faces keep
// internal caches, so a set belongs to exactly one render at a time.
type FontSet struct {
	Code     font.Face
	Question font.Face
	Header   font.Face
	Terminal font.Face
}

// LoadFonts builds a FontSet from the embedded Go Mono faces. Using
// embedded fonts keeps rendering byte-for-byte reproducible across
// machines with no file dependencies.
func LoadFonts() (*FontSet, error) {
	mono, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mono font: %w", err)
	}
	bold, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	newFace := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	set := &FontSet{}
	if set.Code, err = newFace(mono, codeFontSize); err != nil {
		return nil, fmt.Errorf("failed to build code face: %w", err)
	}
	if set.Question, err = newFace(bold, questionFontSize); err != nil {
		return nil, fmt.Errorf("failed to build question face: %w", err)
	}
	if set.Header, err = newFace(mono, headerFontSize); err != nil {
		return nil, fmt.Errorf("failed to build header face: %w", err)
	}
	if set.Terminal, err = newFace(mono, terminalFontSize); err != nil {
		return nil, fmt.Errorf("failed to build terminal face: %w", err)
	}
	return set, nil
}

// measure returns the advance width of text in whole pixels.
func measure(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}
