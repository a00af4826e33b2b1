package enquire

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// renderer redraws a block of prompt output in place.
//
// After every render the cursor sits at the end of the first line of the
// block, where typed input appears. The next render moves back to the top
// of the block, clears it and writes the new content. Wrapped lines are
// accounted for using the terminal width.
type renderer struct {
	output    io.Writer  // Target output writer (tty, colorable wrapper or test buffer)
	width     func() int // Current terminal width
	rows      int        // Physical rows written by the last render
	cursorRow int        // Row of the cursor within the block
}

func newRenderer(output io.Writer, width func() int) *renderer {
	return &renderer{
		output: output,
		width:  width,
	}
}

// visibleWidth returns the display width of s without escape sequences.
func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// physicalRows returns how many terminal rows a line occupies.
func physicalRows(line string, width int) int {
	w := visibleWidth(line)
	if width <= 0 || w <= width {
		return 1
	}
	return (w + width - 1) / width
}

// render replaces the previous block with screen and an optional annotation
// line below it.
func (r *renderer) render(screen, annotation string) error {
	width := r.termWidth()

	lines := strings.Split(screen, "\n")
	if annotation != "" {
		lines = append(lines, annotation)
	}

	var b strings.Builder
	r.writeClear(&b)

	rows := 0
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(line)
		rows += physicalRows(line, width)
	}

	// Return to the end of the first line
	first := physicalRows(lines[0], width)
	if up := rows - first; up > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", up)
	}
	b.WriteString("\r")
	if col := visibleWidth(lines[0]) - (first-1)*width; col > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", col)
	}

	r.rows = rows
	r.cursorRow = first - 1

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *renderer) writeClear(b *strings.Builder) {
	if r.rows == 0 {
		return
	}
	if r.cursorRow > 0 {
		fmt.Fprintf(b, "\x1b[%dA", r.cursorRow)
	}
	b.WriteString("\r\x1b[J")
	r.rows = 0
	r.cursorRow = 0
}

// finish moves the cursor below the block so later output starts on a
// fresh line. The block is no longer tracked afterwards.
func (r *renderer) finish() error {
	if r.rows == 0 {
		return nil
	}
	var b strings.Builder
	if down := r.rows - 1 - r.cursorRow; down > 0 {
		fmt.Fprintf(&b, "\x1b[%dB", down)
	}
	b.WriteString("\r\n")
	r.rows = 0
	r.cursorRow = 0
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

func (r *renderer) termWidth() int {
	if r.width == nil {
		return 80
	}
	if w := r.width(); w > 0 {
		return w
	}
	// Safe fallback to prevent divide by zero
	return 80
}
