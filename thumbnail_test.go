package stitch

import (
	"image/color"
	"testing"
)

func TestPlaceholderThumbnail(t *testing.T) {
	raw := placeholderThumbnail()
	if len(raw) != ThumbStride*ThumbHeight {
		t.Fatalf("placeholder is %d bytes, want %d", len(raw), ThumbStride*ThumbHeight)
	}

	bit := func(x, y int) byte {
		return raw[y*ThumbStride+x/8] >> (x % 8) & 1
	}
	// Border pixels set, interior clear.
	for x := 0; x < ThumbWidth; x++ {
		if bit(x, 0) != 1 || bit(x, ThumbHeight-1) != 1 {
			t.Fatalf("border pixel (%d, top/bottom) not set", x)
		}
	}
	for y := 0; y < ThumbHeight; y++ {
		if bit(0, y) != 1 || bit(ThumbWidth-1, y) != 1 {
			t.Fatalf("border pixel (left/right, %d) not set", y)
		}
	}
	if bit(ThumbWidth/2, ThumbHeight/2) != 0 {
		t.Error("interior pixel set in placeholder")
	}
}

func TestPattern_ThumbnailImage(t *testing.T) {
	p := &Pattern{Thumbnails: [][]byte{placeholderThumbnail()}}

	img, err := p.ThumbnailImage(0)
	if err != nil {
		t.Fatalf("ThumbnailImage(0) error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != ThumbWidth || b.Dy() != ThumbHeight {
		t.Errorf("bounds = %v, want %dx%d", b, ThumbWidth, ThumbHeight)
	}
	// Set bits render black, clear bits white.
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Error("border pixel not black")
	}
	if r, _, _, _ := img.At(ThumbWidth/2, ThumbHeight/2).RGBA(); r != 0xFFFF {
		t.Error("interior pixel not white")
	}

	for _, i := range []int{-1, 1} {
		if _, err := p.ThumbnailImage(i); err == nil {
			t.Errorf("ThumbnailImage(%d) succeeded out of range", i)
		}
	}

	p.Thumbnails = [][]byte{make([]byte, 10)}
	if _, err := p.ThumbnailImage(0); err == nil {
		t.Error("ThumbnailImage accepted a short icon buffer")
	}
}

func TestPattern_ThumbnailPreview(t *testing.T) {
	p := &Pattern{Thumbnails: [][]byte{placeholderThumbnail()}}
	fg := color.NRGBA{R: 0xE0, G: 0x10, B: 0x10, A: 0xFF}

	img, err := p.ThumbnailPreview(0, 3, fg)
	if err != nil {
		t.Fatalf("ThumbnailPreview() error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != ThumbWidth*3 || b.Dy() != ThumbHeight*3 {
		t.Errorf("bounds = %v, want %dx%d", b, ThumbWidth*3, ThumbHeight*3)
	}
	if got := color.NRGBAModel.Convert(img.At(1, 1)); got != fg {
		t.Errorf("scaled border pixel = %v, want %v", got, fg)
	}

	if _, err := p.ThumbnailPreview(0, 0, fg); err == nil {
		t.Error("ThumbnailPreview accepted scale 0")
	}
	if _, err := p.ThumbnailPreview(5, 1, fg); err == nil {
		t.Error("ThumbnailPreview accepted an out-of-range index")
	}
}
