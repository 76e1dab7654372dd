package pixel

import (
	"image/color"
	"testing"
)

func TestGray4(t *testing.T) {
	for y := 0; y < 16; y++ {
		t.Run("", func(it *testing.T) {
			c := Gray4{Y: uint8(y)}
			r, g, b, _ := c.RGBA()
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestGray4Model(t *testing.T) {
	tests := []struct {
		in   color.Color
		want Gray4
	}{
		{color.Black, Black},
		{color.White, White},
		{color.Gray{Y: 0x80}, Divider},
		{color.Gray{Y: 0xA0}, Outline},
		{color.Gray{Y: 0xC0}, Gridline},
		{color.Gray{Y: 0xD0}, Fill},
		{Icon, Icon},
	}
	for _, test := range tests {
		if v := Gray4Model.Convert(test.in); v != test.want {
			t.Errorf("expected %v to convert to %#v, got %#v", test.in, test.want, v)
		}
	}
}

func TestGray4Byte(t *testing.T) {
	for _, test := range []struct {
		c    Gray4
		want byte
	}{
		{Black, 0x00},
		{Dark, 0x44},
		{Outline, 0xaa},
		{White, 0xff},
	} {
		if v := test.c.Byte(); v != test.want {
			t.Errorf("expected %#v to pack to %#02x, got %#02x", test.c, test.want, v)
		}
	}
}

func TestCRGB16Model(t *testing.T) {
	if v := CRGB16Model.Convert(color.White).(CRGB16).V; v != 0xffff {
		t.Errorf("expected white to be 0xffff, got %#04x", v)
	}
	if v := CRGB16Model.Convert(color.RGBA{R: 0xff, A: 0xff}).(CRGB16).V; v != 0xf800 {
		t.Errorf("expected red to be 0xf800, got %#04x", v)
	}
	if v := CBGR16Model.Convert(color.RGBA{R: 0xff, A: 0xff}).(CBGR16).V; v != 0x001f {
		t.Errorf("expected red to be 0x001f, got %#04x", v)
	}
}
