package display

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/weather-display/pixel"
)

type recorder struct {
	name   string
	bounds image.Rectangle
	calls  []string
	frame  *pixel.Gray4Image
	fail   map[string]error
}

func newRecorder(name string, w, h int) *recorder {
	return &recorder{name: name, bounds: image.Rect(0, 0, w, h), fail: map[string]error{}}
}

func (r *recorder) call(name string) error {
	r.calls = append(r.calls, name)
	return r.fail[name]
}

func (r *recorder) String() string          { return r.name }
func (r *recorder) Bounds() image.Rectangle { return r.bounds }
func (r *recorder) PowerOn() error          { return r.call("PowerOn") }
func (r *recorder) Clear() error            { return r.call("Clear") }
func (r *recorder) PowerOff() error         { return r.call("PowerOff") }
func (r *recorder) Close() error            { return r.call("Close") }

func (r *recorder) Transfer(fb *pixel.Gray4Image) error {
	r.frame = fb.Clone()
	return r.call("Transfer")
}

func TestNewFramebuffer(t *testing.T) {
	fb, err := NewFramebuffer(960, 540)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fb.Bounds(), image.Rect(0, 0, 960, 540)); diff != "" {
		t.Errorf("Bounds() difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(fb.Gray4At(959, 539), pixel.White); diff != "" {
		t.Errorf("Gray4At() difference (-got +want):\n%s", diff)
	}

	for _, size := range []image.Point{{0, 540}, {960, 0}, {-1, -1}, {MaxSize + 1, 10}} {
		if _, err := NewFramebuffer(size.X, size.Y); !errors.Is(err, ErrAllocation) {
			t.Errorf("NewFramebuffer(%d, %d): expected ErrAllocation, got %v", size.X, size.Y, err)
		}
	}
}

func TestRefresh(t *testing.T) {
	fb, _ := NewFramebuffer(8, 4)
	fb.SetGray4(1, 1, pixel.Black)

	p := newRecorder("test", 8, 4)
	if err := Refresh(p, fb); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p.calls, []string{"PowerOn", "Clear", "Transfer", "PowerOff"}); diff != "" {
		t.Errorf("calls difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(p.frame.Pix, fb.Pix); diff != "" {
		t.Errorf("frame difference (-got +want):\n%s", diff)
	}
}

func TestRefreshPowerOffOnFailure(t *testing.T) {
	fb, _ := NewFramebuffer(8, 4)
	p := newRecorder("test", 8, 4)
	failure := errors.New("busy")
	p.fail["Transfer"] = failure

	if err := Refresh(p, fb); !errors.Is(err, failure) {
		t.Fatalf("expected transfer error, got %v", err)
	}
	if diff := cmp.Diff(p.calls, []string{"PowerOn", "Clear", "Transfer", "PowerOff"}); diff != "" {
		t.Errorf("calls difference (-got +want):\n%s", diff)
	}
}

func TestRefreshBounds(t *testing.T) {
	fb, _ := NewFramebuffer(8, 4)
	p := newRecorder("test", 4, 8)
	if err := Refresh(p, fb); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected ErrBounds, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Errorf("expected no calls, got %v", p.calls)
	}
}

func TestMulti(t *testing.T) {
	a, b := newRecorder("a", 8, 4), newRecorder("b", 8, 4)
	b.fail["Transfer"] = errors.New("disk full")

	m := Multi{a, b}
	if diff := cmp.Diff(m.String(), "multi(a, b)"); diff != "" {
		t.Errorf("String() difference (-got +want):\n%s", diff)
	}

	fb, _ := NewFramebuffer(8, 4)
	if err := Refresh(m, fb); err == nil {
		t.Fatal("expected error")
	}
	want := []string{"PowerOn", "Clear", "Transfer", "PowerOff"}
	if diff := cmp.Diff(a.calls, want); diff != "" {
		t.Errorf("a calls difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(b.calls, want); diff != "" {
		t.Errorf("b calls difference (-got +want):\n%s", diff)
	}
}

func TestPowered(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO17", Num: 17}
	panel := newRecorder("test", 8, 4)
	p := Powered{Panel: panel, Pin: pin}

	if err := p.PowerOn(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(pin.Read(), gpio.High); diff != "" {
		t.Errorf("Read() after PowerOn difference (-got +want):\n%s", diff)
	}

	panel.fail["PowerOff"] = errors.New("sleep failed")
	if err := p.PowerOff(); err == nil {
		t.Error("expected panel error")
	}
	if diff := cmp.Diff(pin.Read(), gpio.Low); diff != "" {
		t.Errorf("Read() after PowerOff difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(panel.calls, []string{"PowerOn", "PowerOff"}); diff != "" {
		t.Errorf("calls difference (-got +want):\n%s", diff)
	}
}

func TestRotate(t *testing.T) {
	src := pixel.NewGray4Image(4, 2)
	src.Clear()
	src.SetGray4(0, 0, pixel.Black)
	src.SetGray4(3, 1, pixel.Dark)

	for _, test := range []struct {
		r     Rotation
		size  image.Point
		black image.Point
		dark  image.Point
	}{
		{NoRotation, image.Pt(4, 2), image.Pt(0, 0), image.Pt(3, 1)},
		{Rotate90, image.Pt(2, 4), image.Pt(1, 0), image.Pt(0, 3)},
		{Rotate180, image.Pt(4, 2), image.Pt(3, 1), image.Pt(0, 0)},
		{Rotate270, image.Pt(2, 4), image.Pt(0, 3), image.Pt(1, 0)},
	} {
		dst := Rotate(src, test.r)
		if diff := cmp.Diff(dst.Bounds().Size(), test.size); diff != "" {
			t.Errorf("%s: Size() difference (-got +want):\n%s", test.r, diff)
		}
		if v := dst.Gray4At(test.black.X, test.black.Y); v != pixel.Black {
			t.Errorf("%s: expected black at %s, got %#v", test.r, test.black, v)
		}
		if v := dst.Gray4At(test.dark.X, test.dark.Y); v != pixel.Dark {
			t.Errorf("%s: expected dark at %s, got %#v", test.r, test.dark, v)
		}
	}
}

func TestRotated(t *testing.T) {
	panel := newRecorder("portrait", 4, 8)
	p := Rotated{Panel: panel, Rotation: Rotate90}
	if diff := cmp.Diff(p.Bounds(), image.Rect(0, 0, 8, 4)); diff != "" {
		t.Errorf("Bounds() difference (-got +want):\n%s", diff)
	}

	fb, _ := NewFramebuffer(8, 4)
	if err := Refresh(p, fb); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(panel.frame.Bounds(), panel.bounds); diff != "" {
		t.Errorf("frame Bounds() difference (-got +want):\n%s", diff)
	}

	for in, want := range map[int]Rotation{0: NoRotation, 90: Rotate90, 180: Rotate180, 270: Rotate270} {
		if r, err := ParseRotation(in); err != nil || r != want {
			t.Errorf("ParseRotation(%d): expected %s, got %s (%v)", in, want, r, err)
		}
	}
	if _, err := ParseRotation(45); err == nil {
		t.Error("ParseRotation(45): expected error")
	}
}
