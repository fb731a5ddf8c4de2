package optimiser

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/usecase/media"
)

const (
	webpExtension   = ".webp"
	webpContentType = "image/webp"
)

type Optimiser struct {
	webpEnc WebPEncoder
	quality int
}

// compile-time check: *Optimiser must satisfy port.ImageNormaliser
var _ port.ImageNormaliser = (*Optimiser)(nil)

func NewOptimiser(webpEnc WebPEncoder, quality int) *Optimiser {
	log.Println("initialising optimiser...")
	return &Optimiser{
		webpEnc: webpEnc,
		quality: quality,
	}
}

// Normalise decodes JPEG, PNG, GIF (first frame), WebP, BMP or TIFF input
// and re-encodes it as lossy WebP. Dimensions are preserved.
func (o *Optimiser) Normalise(r io.Reader) ([]byte, error) {
	img, format, err := o.webpEnc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrDecode, err)
	}
	log.Printf("re-encoding %s image (%dx%d) as webp...", format, img.Bounds().Dx(), img.Bounds().Dy())

	buf := &bytes.Buffer{}
	if err := o.webpEnc.Encode(img, o.quality, buf); err != nil {
		return nil, fmt.Errorf("optimiser: failed to encode WebP: %w", err)
	}
	return buf.Bytes(), nil
}

func (o *Optimiser) Extension() string {
	return webpExtension
}

func (o *Optimiser) ContentType() string {
	return webpContentType
}
