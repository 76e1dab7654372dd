package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestLoad(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	large := font.MeasureString(s.Large, "72°").Round()
	medium := font.MeasureString(s.Medium, "72°").Round()
	small := font.MeasureString(s.Small, "72°").Round()
	if !(large > medium && medium > small && small > 0) {
		t.Errorf("expected large > medium > small > 0, got %d, %d, %d", large, medium, small)
	}

	if h := s.Large.Metrics().Ascent.Round(); h < 60 {
		t.Errorf("expected large ascent of at least 60px at %d dpi, got %d", DPI, h)
	}
}
