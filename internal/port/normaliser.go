package port

import "io"

// ImageNormaliser re-encodes any supported raster image into the canonical delivery format.
type ImageNormaliser interface {
	Normalise(r io.Reader) ([]byte, error)
	Extension() string
	ContentType() string
}
