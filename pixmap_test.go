package atelier

import (
	"bytes"
	"image"
	"testing"
)

func TestPixmapSetGet(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(1, 2, Red)
	if got := pm.GetPixel(1, 2); !colorsClose(got, Red, 1e-9) {
		t.Errorf("GetPixel = %+v, want red", got)
	}
	if got := pm.GetPixel(-1, 0); got != Transparent {
		t.Errorf("out-of-bounds GetPixel = %+v, want transparent", got)
	}
	pm.SetPixel(9, 9, White) // ignored
}

func TestPixmapBlendPixel(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(0, 0, White)

	// Half-transparent black over white gives mid gray.
	pm.BlendPixel(0, 0, RGBAf(0, 0, 0, 0.5), 255)
	got := pm.GetPixel(0, 0)
	if !colorsClose(got, RGBAf(0.5, 0.5, 0.5, 1), 0.01) {
		t.Errorf("blend result = %+v, want mid gray", got)
	}

	// Coverage scales alpha the same way.
	pm.SetPixel(1, 1, White)
	pm.BlendPixel(1, 1, Black, 128)
	got = pm.GetPixel(1, 1)
	if !colorsClose(got, RGBAf(0.5, 0.5, 0.5, 1), 0.01) {
		t.Errorf("coverage blend = %+v, want mid gray", got)
	}

	// Zero coverage is a no-op.
	before := pm.GetPixel(0, 0)
	pm.BlendPixel(0, 0, Red, 0)
	if pm.GetPixel(0, 0) != before {
		t.Error("zero-coverage blend changed the pixel")
	}
}

func TestPixmapFillSpanClamps(t *testing.T) {
	pm := NewPixmap(4, 1)
	pm.FillSpan(-5, 10, 0, Blue)
	for x := 0; x < 4; x++ {
		if got := pm.GetPixel(x, 0); !colorsClose(got, Blue, 1e-9) {
			t.Fatalf("pixel %d = %+v, want blue", x, got)
		}
	}
	pm.FillSpan(0, 4, 5, Red) // off-canvas row ignored
}

func TestPixmapImageRoundTrip(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.SetPixel(1, 1, RGBAf(0.2, 0.4, 0.6, 1))
	got := FromImage(pm.ToImage()).GetPixel(1, 1)
	if !colorsClose(got, RGBAf(0.2, 0.4, 0.6, 1), 0.02) {
		t.Errorf("round trip = %+v", got)
	}
}

func TestPixmapImplementsImage(t *testing.T) {
	var _ image.Image = NewPixmap(1, 1)
}

func TestPixmapEncodeJPEGQuality(t *testing.T) {
	pm := NewPixmap(4, 4)
	var buf bytes.Buffer
	if err := pm.EncodeJPEG(&buf, 0); err == nil {
		t.Error("quality 0 accepted")
	}
	if err := pm.EncodeJPEG(&buf, 101); err == nil {
		t.Error("quality 101 accepted")
	}
	if err := pm.EncodeJPEG(&buf, 90); err != nil {
		t.Errorf("quality 90: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty JPEG output")
	}
}
