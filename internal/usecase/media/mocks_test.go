package media

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fhuszti/event-medias-go/internal/model"
	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/fhuszti/event-medias-go/internal/uuid"
	guuid "github.com/google/uuid"
)

var fixedID = uuid.UUID(guuid.MustParse("abcd1234-bbbb-cccc-dddd-eeeeeeeeeeee"))

func fixedGen() uuid.UUID { return fixedID }

type mockNormaliser struct {
	out    []byte
	err    error
	called bool
}

func (m *mockNormaliser) Normalise(r io.Reader) ([]byte, error) {
	m.called = true
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return m.out, m.err
}
func (m *mockNormaliser) Extension() string   { return ".webp" }
func (m *mockNormaliser) ContentType() string { return "image/webp" }

type savedObject struct {
	data        []byte
	size        int64
	contentType string
}

type mockStorage struct {
	mu      sync.Mutex
	objects map[string]savedObject
	puts    int
	err     error
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: map[string]savedObject{}}
}

func (m *mockStorage) SaveFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = savedObject{data: data, size: size, contentType: contentType}
	return nil
}

func (m *mockStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type mockRegistrar struct {
	in     port.RegisterAssetInput
	err    error
	called int
}

func (m *mockRegistrar) RegisterAsset(ctx context.Context, in port.RegisterAssetInput) (*model.MediaAsset, error) {
	m.called++
	m.in = in
	if m.err != nil {
		return nil, m.err
	}
	return &model.MediaAsset{ID: fixedID, Name: in.Name, URL: in.URL}, nil
}

type observation struct {
	kind, outcome string
	size          int64
}

type mockObserver struct {
	seen []observation
}

func (m *mockObserver) ObserveIngestion(kind, outcome string, size int64, d time.Duration) {
	m.seen = append(m.seen, observation{kind, outcome, size})
}

// memRepo is an in-memory port.AssetRepository.
type memRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*model.MediaAsset
	createErr error
	listErr   error
	getErr    error
	deleteErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[uuid.UUID]*model.MediaAsset{}}
}

func (r *memRepo) Create(ctx context.Context, a *model.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	a, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) List(ctx context.Context) ([]*model.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*model.MediaAsset
	for _, a := range r.rows {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}

type mockCache struct {
	deleted   int
	deleteErr error
}

func (m *mockCache) GetCatalog(ctx context.Context) ([]byte, error) { return nil, nil }

func (m *mockCache) GetEtagCatalog(ctx context.Context) (string, error) { return "", nil }

func (m *mockCache) CatalogVersion(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockCache) SetCatalog(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
}

func (m *mockCache) DeleteCatalog(ctx context.Context) error {
	m.deleted++
	return m.deleteErr
}

type mockFetcher struct {
	file   *port.RemoteFile
	err    error
	gotURL string
	calls  int
	closed bool
}

type trackingBody struct {
	io.Reader
	onClose func()
}

func (b *trackingBody) Close() error {
	b.onClose()
	return nil
}

func newMockFetcher(body, contentType string) *mockFetcher {
	m := &mockFetcher{}
	m.file = &port.RemoteFile{
		Body:        &trackingBody{Reader: strings.NewReader(body), onClose: func() { m.closed = true }},
		ContentType: contentType,
		SizeBytes:   int64(len(body)),
	}
	return m
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) (*port.RemoteFile, error) {
	m.calls++
	m.gotURL = rawURL
	if m.err != nil {
		return nil, m.err
	}
	return m.file, nil
}

type mockIngester struct {
	in     port.IngestInput
	body   []byte
	res    port.IngestResult
	err    error
	called bool
}

func (m *mockIngester) Ingest(ctx context.Context, in port.IngestInput) (port.IngestResult, error) {
	m.called = true
	m.in = in
	if in.Body != nil {
		buf := &bytes.Buffer{}
		if _, err := buf.ReadFrom(in.Body); err != nil {
			return port.IngestResult{}, err
		}
		m.body = buf.Bytes()
	}
	return m.res, m.err
}

var errBoom = errors.New("boom")
