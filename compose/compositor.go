// Package compose renders single video frames: editor chrome, typed
// question and code text, and the simulated terminal panel. Rendering
// is a pure function of the passed state, which is what makes frame
// output reproducible and testable.
package compose

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"codereel/config"
	"codereel/layout"
	"codereel/syntax"
	"codereel/themes"
)

// SlideDirection is where the terminal panel enters from.
type SlideDirection int

const (
	SlideFromBottom SlideDirection = iota
	SlideFromLeft
	SlideFromRight
)

// Phase tells the compositor which block owns the typing cursor.
type Phase int

const (
	PhaseQuestion Phase = iota
	PhaseCode
	PhaseTerminal
)

// CodeLine is one display line of code. Wrapped continuations of a
// long source line share the parent's Number and indentation but are
// drawn without a gutter number.
type CodeLine struct {
	Number int
	Indent string
	Text   string
	Cont   bool
}

// TerminalState describes the terminal overlay for one frame.
type TerminalState struct {
	SlideProgress float64
	From          SlideDirection
	ShowPrompt    bool
	Command       string
	CursorOn      bool
	Output        []string
	IsError       bool
}

// State is everything a frame shows. Identical states render
// identical frames.
type State struct {
	Phase         Phase
	QuestionLines []string
	CodeLines     []CodeLine
	ShowCursor    bool
	Terminal      *TerminalState
}

// Geometry carries the configurable dimensions of the canvas.
type Geometry struct {
	Width           int
	Height          int
	TerminalHeight  int
	TerminalPadding int
}

// DefaultGeometry is the standard vertical-video canvas.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:           config.VideoWidth,
		Height:          config.VideoHeight,
		TerminalHeight:  config.TerminalHeight,
		TerminalPadding: config.TerminalPadding,
	}
}

// Compositor draws frames for one render. It owns its font faces and
// reuses a single frame buffer, so it must not be shared across
// concurrent renders.
type Compositor struct {
	geom     Geometry
	visual   themes.VisualTheme
	terminal themes.TerminalTheme
	cursor   themes.Cursor
	filename string

	fonts *FontSet
	frame *image.RGBA
}

// NewCompositor builds a compositor for one render with the resolved
// theme selection. filename is the label shown in the editor chrome.
func NewCompositor(geom Geometry, visual themes.VisualTheme, terminal themes.TerminalTheme, cursor themes.Cursor, filename string) (*Compositor, error) {
	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}

	return &Compositor{
		geom:     geom,
		visual:   visual,
		terminal: terminal,
		cursor:   cursor,
		filename: filename,
		fonts:    fonts,
		frame:    image.NewRGBA(image.Rect(0, 0, geom.Width, geom.Height)),
	}, nil
}

// Size returns the canvas dimensions.
func (c *Compositor) Size() (int, int) {
	return c.geom.Width, c.geom.Height
}

// Render draws one complete frame for the given state. The returned
// image is the compositor's reusable buffer: consume or copy it before
// the next Render call.
func (c *Compositor) Render(st State) *image.RGBA {
	fillRect(c.frame, c.frame.Bounds(), c.visual.Background)

	c.drawChrome()
	c.drawQuestion(st)
	c.drawCode(st)

	if st.Terminal != nil {
		c.drawTerminal(st.Terminal)
	}

	return c.frame
}

// drawChrome paints the window dots and the filename label.
func (c *Compositor) drawChrome() {
	for i, dot := range themes.ChromeDotColors {
		x := config.MarginX + i*config.DotSpacing
		fillCircle(c.frame, x+config.DotSize/2, config.HeaderY+config.DotSize/2, config.DotSize/2, dot)
	}

	labelColor := c.visual.TokenColor(syntax.KindComment)
	baseline := config.HeaderY - 5 + ascent(c.fonts.Header)
	c.drawString(c.fonts.Header, c.geom.Width/2-100, baseline, c.filename, labelColor)
}

func (c *Compositor) drawQuestion(st State) {
	face := c.fonts.Question
	up := ascent(face)

	for i, line := range st.QuestionLines {
		baseline := config.QuestionY + i*config.QuestionLineHeight + up
		c.drawString(face, config.MarginX, baseline, line, c.visual.DefaultText)
	}

	if st.Phase == PhaseQuestion && st.ShowCursor {
		row := len(st.QuestionLines) - 1
		tail := ""
		if row < 0 {
			row = 0
		} else {
			tail = st.QuestionLines[row]
		}
		x := config.MarginX + measure(face, tail)
		top := config.QuestionY + row*config.QuestionLineHeight
		c.drawCursor(face, x, top)
	}
}

func (c *Compositor) drawCode(st State) {
	face := c.fonts.Code
	up := ascent(face)
	gutterColor := c.visual.TokenColor(syntax.KindComment)

	for i, line := range st.CodeLines {
		baseline := config.CodeY + i*config.CodeLineHeight + up
		if !line.Cont {
			c.drawString(face, config.MarginX, baseline, strconv.Itoa(line.Number), gutterColor)
		}
		c.drawTokens(face, config.MarginX+config.GutterWidth, baseline, line.Indent+line.Text)
	}

	if st.Phase == PhaseCode && st.ShowCursor && len(st.CodeLines) > 0 {
		row := len(st.CodeLines) - 1
		line := st.CodeLines[row]
		x := config.MarginX + config.GutterWidth + measure(face, line.Indent+line.Text)
		top := config.CodeY + row*config.CodeLineHeight
		c.drawCursor(face, x, top)
	}
}

// drawTokens renders a code line span by span so every token keeps its
// own color while advancing with full fixed-point precision.
func (c *Compositor) drawTokens(face font.Face, x, baseline int, text string) {
	d := font.Drawer{
		Dst:  c.frame,
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	for _, tok := range syntax.Tokenize(text) {
		d.Src = image.NewUniform(c.visual.TokenColor(tok.Kind))
		d.DrawString(tok.Text)
	}
}

func (c *Compositor) drawTerminal(t *TerminalState) {
	p := t.SlideProgress
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	panelX := 0
	panelTop := c.geom.Height - c.geom.TerminalHeight
	switch t.From {
	case SlideFromBottom:
		panelTop = c.geom.Height - int(p*float64(c.geom.TerminalHeight))
	case SlideFromLeft:
		panelX = int((p - 1) * float64(c.geom.Width))
	case SlideFromRight:
		panelX = int((1 - p) * float64(c.geom.Width))
	}

	body := image.Rect(panelX, panelTop, panelX+c.geom.Width, panelTop+c.geom.TerminalHeight)
	fillRect(c.frame, body, c.terminal.Background)

	header := image.Rect(panelX, panelTop, panelX+c.geom.Width, panelTop+config.TerminalHeaderHeight)
	fillRect(c.frame, header, c.terminal.Header)

	face := c.fonts.Terminal
	m := face.Metrics()
	labelH := (m.Ascent + m.Descent).Ceil()
	labelBase := panelTop + (config.TerminalHeaderHeight-labelH)/2 + m.Ascent.Ceil()
	labelX := panelX + (c.geom.Width-measure(face, "Terminal"))/2
	c.drawString(face, labelX, labelBase, "Terminal", c.terminal.Text)

	if !t.ShowPrompt {
		return
	}

	prompt := "$"
	if t.Command != "" {
		prompt += " " + t.Command
	}
	if t.CursorOn {
		if t.Command == "" {
			prompt += " _"
		} else {
			prompt += "_"
		}
	}

	promptX := panelX + c.geom.TerminalPadding
	promptBase := panelTop + config.TerminalPromptOffset + ascent(face)
	c.drawString(face, promptX, promptBase, prompt, c.terminal.Accent)

	resultColor := c.terminal.Success
	if t.IsError {
		resultColor = c.terminal.Error
	}
	for i, line := range t.Output {
		top := panelTop + config.TerminalPromptOffset + config.TerminalResultOffset + i*config.TerminalResultLineHeight
		c.drawString(face, promptX, top+ascent(face), line, resultColor)
	}
}

// drawCursor paints the typing cursor with its configured shape at the
// trailing edge of a text row. top is the row's text top, not the
// baseline.
func (c *Compositor) drawCursor(face font.Face, x, top int) {
	up := ascent(face)
	baseline := top + up

	var r image.Rectangle
	switch c.cursor.Shape {
	case themes.CursorBar:
		r = image.Rect(x+2, top, x+6, baseline+2)
	case themes.CursorUnderscore:
		cell := measure(face, "M")
		r = image.Rect(x+2, baseline-2, x+2+cell, baseline+4)
	default:
		cell := measure(face, "M")
		r = image.Rect(x+2, top, x+2+cell, baseline+2)
	}
	fillRect(c.frame, r, c.visual.CursorColor)
}

// WrapQuestion word-wraps the question text to the page width.
func (c *Compositor) WrapQuestion(question string) []string {
	question = sanitize(question)
	budget := c.geom.Width - 2*config.MarginX
	face := c.fonts.Question

	var lines []string
	for _, src := range strings.Split(question, "\n") {
		lines = append(lines, layout.Wrap(src, func(s string) int { return measure(face, s) }, budget)...)
	}
	return lines
}

// WrapCode turns source code into display lines, wrapping each source
// line to the code block width and numbering by source line.
func (c *Compositor) WrapCode(code string) []CodeLine {
	code = sanitize(code)
	budget := c.geom.Width - 2*config.MarginX - config.GutterWidth
	face := c.fonts.Code
	measureCode := func(s string) int { return measure(face, s) }

	var lines []CodeLine
	for num, src := range strings.Split(code, "\n") {
		indent := layout.LeadingIndent(src)
		for i, sub := range layout.Wrap(src, measureCode, budget) {
			if i == 0 {
				lines = append(lines, CodeLine{Number: num + 1, Indent: indent, Text: sub[len(indent):]})
				continue
			}
			lines = append(lines, CodeLine{Number: num + 1, Indent: indent, Text: sub, Cont: true})
		}
	}
	return lines
}

// WrapOutput wraps program output to the terminal content width and
// truncates with an ellipsis when it exceeds the panel's line budget.
func (c *Compositor) WrapOutput(output string) []string {
	output = strings.TrimRight(sanitize(output), "\n")
	if output == "" {
		return nil
	}

	face := c.fonts.Terminal
	budget := c.geom.Width - 2*c.geom.TerminalPadding
	measureTerm := func(s string) int { return measure(face, s) }

	var lines []string
	for _, src := range strings.Split(output, "\n") {
		lines = append(lines, layout.Wrap(src, measureTerm, budget)...)
	}

	maxLines := (c.geom.TerminalHeight - config.TerminalPromptOffset - config.TerminalResultOffset) / config.TerminalResultLineHeight
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		for len(last) > 0 && measureTerm(string(last)+"...") > budget {
			last = last[:len(last)-1]
		}
		lines[maxLines-1] = string(last) + "..."
	}
	return lines
}

func (c *Compositor) drawString(face font.Face, x, baseline int, text string, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.frame,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

func ascent(face font.Face) int {
	return face.Metrics().Ascent.Ceil()
}

// sanitize removes characters the monospace faces cannot place: tabs
// become four spaces and carriage returns vanish.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ReplaceAll(text, "\t", "    ")
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(cx+dx, cy+dy, col)
			}
		}
	}
}
