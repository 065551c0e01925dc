package atelier

import "testing"

func TestMeasureString(t *testing.T) {
	dc := NewContext(100, 100)
	w, h := dc.MeasureString("hello")
	if w <= 0 || h <= 0 {
		t.Errorf("MeasureString = %v, %v, want positive", w, h)
	}
	w2, _ := dc.MeasureString("hello hello")
	if w2 <= w {
		t.Errorf("longer string width %v not above %v", w2, w)
	}
}

func TestDrawString(t *testing.T) {
	dc := NewContext(200, 60)
	dc.ClearWithColor(White)
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(nil) // builtin face loads lazily
	if err := dc.DrawString("Hello", 10, 40); err != nil {
		t.Fatalf("DrawString: %v", err)
	}

	// Some pixel inside the text box must darken.
	painted := false
	for y := 10; y < 45 && !painted; y++ {
		for x := 10; x < 100; x++ {
			if c := dc.Pixmap().GetPixel(x, y); c.R < 0.5 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("DrawString left the canvas blank")
	}

	// The path must be untouched by text drawing.
	if _, ok := dc.CurrentPoint(); ok {
		t.Error("DrawString leaked into the current path")
	}
}

func TestDrawStringEmpty(t *testing.T) {
	dc := NewContext(10, 10)
	if err := dc.DrawString("", 5, 5); err != nil {
		t.Errorf("empty DrawString: %v", err)
	}
}

func TestDrawStringAnchored(t *testing.T) {
	width := func(ax float64) (minX int) {
		dc := NewContext(200, 60)
		dc.ClearWithColor(White)
		dc.SetRGB(0, 0, 0)
		if err := dc.DrawStringAnchored("mm", 100, 30, ax, 0); err != nil {
			t.Fatalf("DrawStringAnchored: %v", err)
		}
		minX = 200
		for y := 0; y < 60; y++ {
			for x := 0; x < 200; x++ {
				if c := dc.Pixmap().GetPixel(x, y); c.R < 0.5 && x < minX {
					minX = x
				}
			}
		}
		return minX
	}

	left := width(0)
	centered := width(0.5)
	if centered >= left {
		t.Errorf("ax=0.5 minX %d not left of ax=0 minX %d", centered, left)
	}
}

func TestFontHeight(t *testing.T) {
	dc := NewContext(10, 10)
	if got := dc.FontHeight(); got <= 0 {
		t.Errorf("FontHeight = %v, want > 0", got)
	}
}

func TestLoadFontFaceMissing(t *testing.T) {
	dc := NewContext(10, 10)
	if err := dc.LoadFontFace("/nonexistent/font.ttf", 12); err == nil {
		t.Error("missing font file loaded without error")
	}
}
