package optimiser

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type chaiEncoder struct{}

// NewWebPEncoder decodes any registered raster format and encodes lossy WebP with libwebp.
func NewWebPEncoder() WebPEncoder {
	return chaiEncoder{}
}

func (chaiEncoder) Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

func (chaiEncoder) Encode(img image.Image, quality int, w io.Writer) error {
	return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
}
