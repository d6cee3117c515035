package stitch

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"golang.org/x/image/draw"
)

// ThumbnailImage decodes the i-th raw icon into a monochrome image. Icon 0
// is the general design icon; icon n+1 previews color table entry n. Icons
// are one bit per pixel, least-significant bit leftmost.
func (p *Pattern) ThumbnailImage(i int) (image.Image, error) {
	if i < 0 || i >= len(p.Thumbnails) {
		return nil, fmt.Errorf("stitch: thumbnail %d of %d out of range", i, len(p.Thumbnails))
	}
	raw := p.Thumbnails[i]
	if len(raw) != ThumbStride*ThumbHeight {
		return nil, fmt.Errorf("stitch: thumbnail %d has %d bytes, want %d: %w",
			i, len(raw), ThumbStride*ThumbHeight, ErrMalformedHeader)
	}
	img := image.NewGray(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	for y := 0; y < ThumbHeight; y++ {
		for x := 0; x < ThumbWidth; x++ {
			bit := raw[y*ThumbStride+x/8] >> (x % 8) & 1
			if bit == 0 {
				img.SetGray(x, y, stdcolor.Gray{Y: 0xFF})
			}
		}
	}
	return img, nil
}

// ThumbnailPreview renders the i-th icon scaled by the given integer factor,
// with set pixels drawn in fg on a white background. Color icons pair
// naturally with the matching table entry:
//
//	rgb, _ := pat.Colors.Resolve(n)
//	img, _ := pat.ThumbnailPreview(n+1, 4, rgb.Color())
func (p *Pattern) ThumbnailPreview(i, scale int, fg stdcolor.Color) (image.Image, error) {
	if scale < 1 {
		return nil, fmt.Errorf("stitch: thumbnail scale %d must be positive", scale)
	}
	if i < 0 || i >= len(p.Thumbnails) {
		return nil, fmt.Errorf("stitch: thumbnail %d of %d out of range", i, len(p.Thumbnails))
	}
	raw := p.Thumbnails[i]
	if len(raw) != ThumbStride*ThumbHeight {
		return nil, fmt.Errorf("stitch: thumbnail %d has %d bytes, want %d: %w",
			i, len(raw), ThumbStride*ThumbHeight, ErrMalformedHeader)
	}

	src := image.NewNRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	r, g, b, a := fg.RGBA()
	on := stdcolor.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	off := stdcolor.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for y := 0; y < ThumbHeight; y++ {
		for x := 0; x < ThumbWidth; x++ {
			if raw[y*ThumbStride+x/8]>>(x%8)&1 != 0 {
				src.SetNRGBA(x, y, on)
			} else {
				src.SetNRGBA(x, y, off)
			}
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, ThumbWidth*scale, ThumbHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// placeholderThumbnail is the icon written when a pattern carries no
// thumbnail bytes: an empty canvas with a one-pixel border, matching what
// embroidery software shows for unrendered designs.
func placeholderThumbnail() []byte {
	raw := make([]byte, ThumbStride*ThumbHeight)
	for x := 0; x < ThumbWidth; x++ {
		raw[x/8] |= 1 << (x % 8)
		raw[(ThumbHeight-1)*ThumbStride+x/8] |= 1 << (x % 8)
	}
	for y := 0; y < ThumbHeight; y++ {
		raw[y*ThumbStride] |= 0x01
		raw[y*ThumbStride+ThumbStride-1] |= 0x80
	}
	return raw
}
