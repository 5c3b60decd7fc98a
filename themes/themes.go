// Package themes holds the static presentation catalogs: editor and
// terminal color schemes, cursor shapes, narration voices, and the
// languages a tutorial can target. Catalogs are read-only; picking one
// entry per render (randomly or not) is the caller's business.
package themes

import (
	"image/color"

	"codereel/syntax"
)

// VisualTheme colors the editor view: page background, plain text, and
// one color per token kind.
type VisualTheme struct {
	ID          string
	Background  color.RGBA
	DefaultText color.RGBA
	CursorColor color.RGBA
	TokenColors map[syntax.Kind]color.RGBA
}

// TerminalTheme colors the simulated terminal panel.
type TerminalTheme struct {
	ID         string
	Background color.RGBA
	Header     color.RGBA
	Text       color.RGBA
	Accent     color.RGBA
	Success    color.RGBA
	Error      color.RGBA
}

// TokenColor resolves the color for a token kind, falling back to the
// theme's plain text color for unmapped kinds.
func (t VisualTheme) TokenColor(kind syntax.Kind) color.RGBA {
	if c, ok := t.TokenColors[kind]; ok {
		return c
	}
	return t.DefaultText
}

// ChromeDotColors are the three window dots, fixed across themes.
var ChromeDotColors = [3]color.RGBA{
	{R: 255, G: 95, B: 86, A: 255},
	{R: 255, G: 189, B: 46, A: 255},
	{R: 39, G: 201, B: 63, A: 255},
}

// Visuals is the editor theme catalog. The first entry is the default.
var Visuals = []VisualTheme{
	{
		ID:          "onedark",
		Background:  color.RGBA{R: 30, G: 34, B: 40, A: 255},
		DefaultText: color.RGBA{R: 220, G: 223, B: 228, A: 255},
		CursorColor: color.RGBA{R: 82, G: 139, B: 255, A: 255},
		TokenColors: map[syntax.Kind]color.RGBA{
			syntax.KindKeyword:  {R: 198, G: 120, B: 221, A: 255},
			syntax.KindString:   {R: 152, G: 195, B: 121, A: 255},
			syntax.KindNumber:   {R: 209, G: 154, B: 102, A: 255},
			syntax.KindComment:  {R: 120, G: 120, B: 120, A: 255},
			syntax.KindOperator: {R: 86, G: 182, B: 194, A: 255},
			syntax.KindFunction: {R: 97, G: 175, B: 239, A: 255},
			syntax.KindBuiltin:  {R: 229, G: 192, B: 123, A: 255},
			syntax.KindBracket:  {R: 220, G: 223, B: 228, A: 255},
		},
	},
	{
		ID:          "dracula",
		Background:  color.RGBA{R: 40, G: 42, B: 54, A: 255},
		DefaultText: color.RGBA{R: 248, G: 248, B: 242, A: 255},
		CursorColor: color.RGBA{R: 189, G: 147, B: 249, A: 255},
		TokenColors: map[syntax.Kind]color.RGBA{
			syntax.KindKeyword:  {R: 255, G: 121, B: 198, A: 255},
			syntax.KindString:   {R: 241, G: 250, B: 140, A: 255},
			syntax.KindNumber:   {R: 189, G: 147, B: 249, A: 255},
			syntax.KindComment:  {R: 98, G: 114, B: 164, A: 255},
			syntax.KindOperator: {R: 139, G: 233, B: 253, A: 255},
			syntax.KindFunction: {R: 80, G: 250, B: 123, A: 255},
			syntax.KindBuiltin:  {R: 139, G: 233, B: 253, A: 255},
			syntax.KindBracket:  {R: 248, G: 248, B: 242, A: 255},
		},
	},
	{
		ID:          "github-dark",
		Background:  color.RGBA{R: 13, G: 17, B: 23, A: 255},
		DefaultText: color.RGBA{R: 201, G: 209, B: 217, A: 255},
		CursorColor: color.RGBA{R: 88, G: 166, B: 255, A: 255},
		TokenColors: map[syntax.Kind]color.RGBA{
			syntax.KindKeyword:  {R: 255, G: 123, B: 114, A: 255},
			syntax.KindString:   {R: 165, G: 214, B: 255, A: 255},
			syntax.KindNumber:   {R: 121, G: 192, B: 255, A: 255},
			syntax.KindComment:  {R: 139, G: 148, B: 158, A: 255},
			syntax.KindOperator: {R: 121, G: 192, B: 255, A: 255},
			syntax.KindFunction: {R: 210, G: 168, B: 255, A: 255},
			syntax.KindBuiltin:  {R: 255, G: 166, B: 87, A: 255},
			syntax.KindBracket:  {R: 201, G: 209, B: 217, A: 255},
		},
	},
}

// Terminals is the terminal theme catalog. The first entry is the default.
var Terminals = []TerminalTheme{
	{
		ID:         "classic",
		Background: color.RGBA{R: 20, G: 20, B: 20, A: 255},
		Header:     color.RGBA{R: 40, G: 40, B: 40, A: 255},
		Text:       color.RGBA{R: 220, G: 223, B: 228, A: 255},
		Accent:     color.RGBA{R: 152, G: 195, B: 121, A: 255},
		Success:    color.RGBA{R: 152, G: 195, B: 121, A: 255},
		Error:      color.RGBA{R: 224, G: 108, B: 117, A: 255},
	},
	{
		ID:         "matrix",
		Background: color.RGBA{R: 5, G: 15, B: 5, A: 255},
		Header:     color.RGBA{R: 10, G: 35, B: 10, A: 255},
		Text:       color.RGBA{R: 0, G: 255, B: 65, A: 255},
		Accent:     color.RGBA{R: 0, G: 255, B: 65, A: 255},
		Success:    color.RGBA{R: 0, G: 255, B: 65, A: 255},
		Error:      color.RGBA{R: 255, G: 80, B: 80, A: 255},
	},
	{
		ID:         "ocean",
		Background: color.RGBA{R: 15, G: 25, B: 35, A: 255},
		Header:     color.RGBA{R: 25, G: 40, B: 55, A: 255},
		Text:       color.RGBA{R: 205, G: 220, B: 230, A: 255},
		Accent:     color.RGBA{R: 102, G: 217, B: 239, A: 255},
		Success:    color.RGBA{R: 153, G: 229, B: 80, A: 255},
		Error:      color.RGBA{R: 249, G: 38, B: 114, A: 255},
	},
}

// VisualByID resolves an editor theme, defaulting to the first catalog
// entry for unknown or empty ids.
func VisualByID(id string) VisualTheme {
	for _, t := range Visuals {
		if t.ID == id {
			return t
		}
	}
	return Visuals[0]
}

// TerminalByID resolves a terminal theme, defaulting like VisualByID.
func TerminalByID(id string) TerminalTheme {
	for _, t := range Terminals {
		if t.ID == id {
			return t
		}
	}
	return Terminals[0]
}
