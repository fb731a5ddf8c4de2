package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/gabriel-vasile/mimetype"
)

const (
	defaultContentType = "application/octet-stream"
	sniffLen           = 3072
)

type ingestSrv struct {
	normaliser port.ImageNormaliser
	strg       port.Storage
	registrar  port.AssetRegistrar
	observer   port.IngestObserver
	genID      port.UUIDGen
}

// compile-time check: *ingestSrv must satisfy port.Ingester
var _ port.Ingester = (*ingestSrv)(nil)

func NewIngester(normaliser port.ImageNormaliser, strg port.Storage, registrar port.AssetRegistrar, observer port.IngestObserver, genID port.UUIDGen) port.Ingester {
	return &ingestSrv{
		normaliser: normaliser,
		strg:       strg,
		registrar:  registrar,
		observer:   observer,
		genID:      genID,
	}
}

// Ingest sanitizes the name, normalises images, stores the bytes and, when
// asked to, registers the result in the catalog. A registration failure after
// a successful store is reported as OutcomePartialFailure with a nil error.
func (s *ingestSrv) Ingest(ctx context.Context, in port.IngestInput) (res port.IngestResult, err error) {
	start := time.Now()
	defer func() {
		s.observer.ObserveIngestion(string(in.Kind), string(res.Outcome), res.SizeBytes, time.Since(start))
	}()

	if in.Body == nil {
		return rejected(BadRequest("no file was provided"))
	}

	var (
		name        string
		body        io.Reader
		size        int64
		contentType string
		suffix      = s.genID().Short()
	)

	switch in.Kind {
	case model.AssetKindImage:
		logger.Debugf(ctx, "normalising image %q...", in.Filename)
		data, err := s.normaliser.Normalise(in.Body)
		if err != nil {
			return rejected(err)
		}
		name = ImageObjectName(in.Filename, s.normaliser.Extension(), suffix, in.UniqueNaming)
		body, size, contentType = bytes.NewReader(data), int64(len(data)), s.normaliser.ContentType()

	case model.AssetKindVideo:
		name = VideoObjectName(in.Filename, suffix, in.UniqueNaming)
		body, contentType, err = videoContentType(in.Body, in.ContentType)
		if err != nil {
			return rejected(fmt.Errorf("could not read video: %w", err))
		}
		size = in.SizeBytes

	default:
		return rejected(BadRequest(fmt.Sprintf("unsupported asset kind %q", in.Kind)))
	}

	key := ObjectKey(in.Kind, name)
	if err := s.strg.SaveFile(ctx, key, body, size, contentType); err != nil {
		if !errors.Is(err, ErrUpload) {
			err = fmt.Errorf("%w: %v", ErrUpload, err)
		}
		return rejected(err)
	}

	res = port.IngestResult{
		Outcome:   port.OutcomeSucceeded,
		URL:       s.strg.PublicURL(key),
		ObjectKey: key,
		SizeBytes: size,
	}
	logger.Infof(ctx, "✅  Stored %s as %q", in.Kind, key)

	if !in.Register {
		return res, nil
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Filename
	}
	if displayName == "" {
		displayName = name
	}

	asset, regErr := s.registrar.RegisterAsset(ctx, port.RegisterAssetInput{Name: displayName, URL: res.URL})
	if regErr != nil {
		logger.Warnf(ctx, "⚠️  %q is live at %s but was not saved to the gallery: %v", key, res.URL, regErr)
		res.Outcome = port.OutcomePartialFailure
		res.RegisterErr = regErr
		return res, nil
	}
	res.Asset = asset
	return res, nil
}

func rejected(err error) (port.IngestResult, error) {
	return port.IngestResult{Outcome: port.OutcomeRejected}, err
}

// videoContentType keeps the declared type, sniffing the first bytes when the
// client sent none or a generic one. The returned reader replays the sniffed bytes.
func videoContentType(r io.Reader, declared string) (io.Reader, string, error) {
	if declared != "" && declared != defaultContentType {
		return r, declared, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", err
	}
	head = head[:n]
	replay := io.MultiReader(bytes.NewReader(head), r)

	if n == 0 {
		return replay, defaultContentType, nil
	}
	return replay, mimetype.Detect(head).String(), nil
}
