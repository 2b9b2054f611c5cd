package video

import (
	"image"

	"golang.org/x/image/draw"
)

// Clone copies img into a new RGBA image with its origin at (0, 0). Drivers
// reuse their buffers, so frames that outlive their release func have to be
// cloned first.
func Clone(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	return dst
}
