package framebuffer

import (
	"fmt"
	"image"
	"os"
	"syscall"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/draw"
	"github.com/BeatGlow/weather-display/internal/ioctl"
	"github.com/BeatGlow/weather-display/pixel"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
	fbioBlank          = 0x4611

	fbBlankUnblank   = 0
	fbBlankPowerdown = 4
)

type linuxFrameBuffer struct {
	name   string
	f      *os.File
	fd     uintptr
	info   linuxFrameBufferInfo
	screen linuxVarScreenInfo
	format format
	mem    []byte
	rect   image.Rectangle
	image  draw.Image
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (display.Panel, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	fb := &linuxFrameBuffer{
		name: name,
		f:    f,
		fd:   f.Fd(),
	}
	if err = ioctl.Do(fb.fd, fbioGetFScreenInfo, &fb.info); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(fb.fd, fbioGetVScreenInfo, &fb.screen); err != nil {
		_ = f.Close()
		return nil, err
	}
	s := &fb.screen
	if fb.format, err = parseFormat(s.BitsPerPixel, s.Grayscale, s.Red, s.Green, s.Blue); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if fb.mem, err = syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	fb.rect = image.Rect(0, 0, int(s.Xres), int(s.Yres))
	fb.image = view(fb.format, fb.mem, int(fb.info.LineLength), fb.rect)
	return fb, nil
}

func (fb *linuxFrameBuffer) String() string {
	return fmt.Sprintf("fbdev %s %dx%d %s", fb.name, fb.rect.Dx(), fb.rect.Dy(), fb.format)
}

func (fb *linuxFrameBuffer) Bounds() image.Rectangle {
	return fb.rect
}

// PowerOn unblanks the screen.
func (fb *linuxFrameBuffer) PowerOn() error {
	return fb.blank(fbBlankUnblank)
}

// PowerOff blanks the screen.
func (fb *linuxFrameBuffer) PowerOff() error {
	return fb.blank(fbBlankPowerdown)
}

func (fb *linuxFrameBuffer) blank(mode uintptr) error {
	// Not all drivers implement blanking.
	_ = ioctl.Call(fb.fd, fbioBlank, mode)
	return nil
}

func (fb *linuxFrameBuffer) Clear() error {
	draw.Fill(fb.image, fb.rect, pixel.White)
	return nil
}

func (fb *linuxFrameBuffer) Transfer(frame *pixel.Gray4Image) error {
	convert(fb.image, frame)
	return nil
}

// Close the framebuffer device
func (fb *linuxFrameBuffer) Close() error {
	if err := syscall.Munmap(fb.mem); err != nil {
		return err
	}
	return fb.f.Close()
}

type linuxFrameBufferInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}
