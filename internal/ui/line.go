package ui

// Color names a display role rather than a terminal attribute. Colors
// are resolved to lipgloss styles only at the render boundary, so the
// engines and views never touch raw color values.
type Color int

const (
	ColorDefault  Color = iota
	ColorNormal         // plain foreground
	ColorAuthor         // commit author, assistant role, focused border
	ColorCommit         // commit SHA, diffstat additions
	ColorDate           // dates, system role
	ColorRefs           // branch/tag decorations
	ColorDelete         // diffstat deletions
	ColorMetadata       // timestamps, filenames, counters
)

// Segment is one colored run of text within a line.
type Segment struct {
	Text  string
	Color Color
}

// Line is one row of pane content: either a plain string, a single
// colored string, or a sequence of colored segments. The renderer
// switches on which form it is.
type Line struct {
	segments []Segment
	styled   bool
}

// Plain builds a line rendered entirely in the default color.
func Plain(text string) Line {
	return Line{segments: []Segment{{Text: text, Color: ColorDefault}}}
}

// Styled builds a line rendered in a single color.
func Styled(text string, color Color) Line {
	return Line{segments: []Segment{{Text: text, Color: color}}, styled: true}
}

// Segments builds a multi-colored line from left-to-right runs.
func Segments(segs ...Segment) Line {
	return Line{segments: segs, styled: true}
}

// IsPlain reports whether the line carries no color information.
func (l Line) IsPlain() bool { return !l.styled }

// Runs returns the line's colored runs in draw order.
func (l Line) Runs() []Segment { return l.segments }

// Text returns the line's uncolored text.
func (l Line) Text() string {
	if len(l.segments) == 1 {
		return l.segments[0].Text
	}
	var s string
	for _, seg := range l.segments {
		s += seg.Text
	}
	return s
}

// Width returns the line's display width in columns.
func (l Line) Width() int {
	w := 0
	for _, seg := range l.segments {
		w += DisplayWidth(seg.Text)
	}
	return w
}
