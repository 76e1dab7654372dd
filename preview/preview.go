// Package preview contains panels for development machines: a PNG file and an ANSI terminal.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/pixel"
)

// MaxScale is the largest supported upscaling factor.
const MaxScale = 4

// Gray8 expands a frame to 8-bit gray, upscaled by an integer factor with nearest neighbour
// sampling.
func Gray8(fb *pixel.Gray4Image, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	var (
		b   = fb.Bounds()
		dst = image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := fb.Gray4At(b.Min.X+x, b.Min.Y+y).Y * 0x11
			for sy := 0; sy < scale; sy++ {
				row := dst.Pix[(y*scale+sy)*dst.Stride:]
				for sx := 0; sx < scale; sx++ {
					row[x*scale+sx] = v
				}
			}
		}
	}
	return dst
}

// Encode writes fb as an 8-bit grayscale PNG.
func Encode(w io.Writer, fb *pixel.Gray4Image, scale int) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, Gray8(fb, scale))
}

// PNG writes every transferred frame to a file. The file is replaced atomically so readers
// never see a partial image.
type PNG struct {
	Path string
	Size image.Point
}

func (p *PNG) String() string {
	return "png " + p.Path
}

// Bounds of the panel.
func (p *PNG) Bounds() image.Rectangle {
	return image.Rectangle{Max: p.Size}
}

// PowerOn is a no-op.
func (p *PNG) PowerOn() error { return nil }

// Clear is a no-op; every transfer writes a full image.
func (p *PNG) Clear() error { return nil }

// PowerOff is a no-op.
func (p *PNG) PowerOff() error { return nil }

// Close is a no-op.
func (p *PNG) Close() error { return nil }

// Transfer writes fb to Path.
func (p *PNG) Transfer(fb *pixel.Gray4Image) (err error) {
	f, err := os.CreateTemp(filepath.Dir(p.Path), "."+filepath.Base(p.Path)+"-*")
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = Encode(f, fb, 1); err != nil {
		_ = f.Close()
		return fmt.Errorf("preview: encode %s: %w", p.Path, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p.Path)
}

var _ display.Panel = (*PNG)(nil)
