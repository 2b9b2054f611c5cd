package video

import (
	"image"

	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

// Scale returns video scaling transform. Frames are drawn into a reused RGBA
// buffer of width x height. Frames that already have the requested size are
// passed through untouched.
// Setting scaler=nil to use default scaler. (ScalerApproxBiLinear)
func Scale(width, height int, scaler Scaler) TransformFunc {
	return func(r Reader) Reader {
		if width <= 0 || height <= 0 {
			return r
		}
		if scaler == nil {
			scaler = ScalerApproxBiLinear
		}

		rect := image.Rect(0, 0, width, height)
		dst := image.NewRGBA(rect)
		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			if release == nil {
				release = func() {}
			}

			if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
				return img, release, nil
			}

			scaler.Scale(dst, rect, img, img.Bounds(), draw.Src, nil)
			release()
			return dst, func() {}, nil
		})
	}
}

// Fit returns the largest size with the aspect ratio of width x height that
// fits into maxWidth x maxHeight. A non-positive bound leaves that dimension
// unbounded. The source is never upscaled.
func Fit(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}

	ratio := 1.0
	if maxWidth > 0 && maxWidth < width {
		ratio = float64(maxWidth) / float64(width)
	}
	if maxHeight > 0 && maxHeight < height {
		if r := float64(maxHeight) / float64(height); r < ratio {
			ratio = r
		}
	}
	if ratio == 1.0 {
		return width, height
	}

	w := int(float64(width)*ratio + 0.5)
	h := int(float64(height)*ratio + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
