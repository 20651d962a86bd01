package extract

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// webp uploads decode through the standard image registry.
	_ "golang.org/x/image/webp"
)

// MaxImageDim is the bound an uploaded image must fit within before it
// is forwarded to the vision model.
const MaxImageDim = 768

var imageMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

func IsSupportedImageType(contentType string) bool {
	_, ok := imageMediaTypes[contentType]
	return ok
}

// DecodeImage decodes an uploaded image and, when either dimension
// exceeds MaxImageDim, downscales it to fit within MaxImageDim square
// preserving aspect ratio. Lanczos resampling matches the quality the
// vision model was served with historically.
func DecodeImage(data []byte, contentType string) (image.Image, error) {
	if !IsSupportedImageType(contentType) {
		return nil, ErrUnsupportedType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxImageDim || bounds.Dy() > MaxImageDim {
		img = imaging.Fit(img, MaxImageDim, MaxImageDim, imaging.Lanczos)
	}
	return img, nil
}
