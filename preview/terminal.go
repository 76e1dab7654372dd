package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/pixel"
)

// DefaultColumns is the terminal width used when none is given.
const DefaultColumns = 120

// Terminal draws a downsampled frame with ANSI 256 color blocks. A terminal cell is about twice
// as tall as it is wide, so each cell covers twice as many rows as columns.
type Terminal struct {
	w       io.Writer
	size    image.Point
	columns int
	palette ansi256.Palette
	buf     bytes.Buffer
}

// NewTerminal returns a terminal panel of the given frame size. A nil w writes to stdout.
func NewTerminal(w io.Writer, size image.Point, columns int) *Terminal {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	if columns <= 0 {
		columns = DefaultColumns
	}
	if size.X > 0 && columns > size.X {
		columns = size.X
	}
	return &Terminal{
		w:       w,
		size:    size,
		columns: columns,
		palette: *ansi256.Default,
	}
}

func (t *Terminal) String() string {
	return fmt.Sprintf("terminal %d columns", t.columns)
}

// Bounds of the frame.
func (t *Terminal) Bounds() image.Rectangle {
	return image.Rectangle{Max: t.size}
}

// PowerOn is a no-op.
func (t *Terminal) PowerOn() error { return nil }

// PowerOff is a no-op.
func (t *Terminal) PowerOff() error { return nil }

// Clear moves the cursor home and clears the screen.
func (t *Terminal) Clear() error {
	_, err := io.WriteString(t.w, "\033[H\033[2J")
	return err
}

// Close resets the terminal attributes.
func (t *Terminal) Close() error {
	_, err := io.WriteString(t.w, "\033[0m\n")
	return err
}

// Cells returns the grid the frame is sampled onto.
func (t *Terminal) Cells() (cols, rows int) {
	step := t.size.X / t.columns
	if step < 1 {
		step = 1
	}
	return t.size.X / step, t.size.Y / (step * 2)
}

// Transfer writes one line of blocks per cell row, each block the mean gray of its cell.
func (t *Terminal) Transfer(fb *pixel.Gray4Image) error {
	var (
		b          = fb.Bounds()
		cols, rows = t.Cells()
	)
	if cols == 0 || rows == 0 {
		return nil
	}
	cw, ch := b.Dx()/cols, b.Dy()/rows

	t.buf.Reset()
	for row := 0; row < rows; row++ {
		_, _ = t.buf.WriteString("\033[0m")
		for col := 0; col < cols; col++ {
			var sum int
			for y := 0; y < ch; y++ {
				for x := 0; x < cw; x++ {
					sum += int(fb.Gray4At(b.Min.X+col*cw+x, b.Min.Y+row*ch+y).Y)
				}
			}
			v := uint8(sum * 0x11 / (cw * ch))
			_, _ = t.buf.WriteString(t.palette.Block(color.NRGBA{R: v, G: v, B: v, A: 0xff}))
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}

var _ display.Panel = (*Terminal)(nil)
