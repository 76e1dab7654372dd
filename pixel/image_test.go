package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestGray4Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewGray4Image(size.X, size.Y)
	}, Gray4Model)
}

func TestCBGR16Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewCBGR16Image(size.X, size.Y)
	}, CBGR16Model)
}

func TestCRGB16Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewCRGB16Image(size.X, size.Y)
	}, CRGB16Model)
}

func TestGray4ImagePacking(t *testing.T) {
	i := NewGray4Image(5, 2)
	if i.Stride != 3 {
		t.Fatalf("expected stride 3, got %d", i.Stride)
	}
	if len(i.Pix) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(i.Pix))
	}

	i.Clear()
	for j, v := range i.Pix {
		if v != 0xff {
			t.Fatalf("expected cleared byte %d to be white, got %#02x", j, v)
		}
	}

	i.SetGray4(0, 0, Gray4{Y: 0x1})
	i.SetGray4(1, 0, Gray4{Y: 0x2})
	i.SetGray4(4, 1, Black)
	if v := i.Pix[0]; v != 0x12 {
		t.Errorf("expected even pixel in high nibble (0x12), got %#02x", v)
	}
	if v := i.Pix[5]; v != 0x0f {
		t.Errorf("expected last pixel in high nibble of padded byte (0x0f), got %#02x", v)
	}

	i.SetGray4(5, 1, Black)
	i.SetGray4(-1, 0, Black)
	if v := i.Pix[5]; v != 0x0f {
		t.Errorf("expected out of bounds write to be dropped, got %#02x", v)
	}
	if v := i.Gray4At(-1, -1); v != White {
		t.Errorf("expected out of bounds read to be white, got %#v", v)
	}
}

func TestGray4ImageClone(t *testing.T) {
	i := NewGray4Image(4, 4)
	i.Clear()
	i.SetGray4(1, 1, Dark)

	c := i.Clone()
	i.SetGray4(1, 1, White)
	if v := c.Gray4At(1, 1); v != Dark {
		t.Errorf("expected clone to keep %#v, got %#v", Dark, v)
	}

	if !i.CopyFrom(c) {
		t.Fatal("expected copy between equal geometries to succeed")
	}
	if v := i.Gray4At(1, 1); v != Dark {
		t.Errorf("expected copied pixel %#v, got %#v", Dark, v)
	}
	if NewGray4Image(3, 4).CopyFrom(c) {
		t.Error("expected copy between different geometries to fail")
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(3, 5),
		image.Pt(256, 32),
		image.Pt(960, 4),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
