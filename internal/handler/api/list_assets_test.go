package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/event-medias-go/internal/mock"
)

func TestListAssetsHandler(t *testing.T) {
	const etag = "\"0badcafe\""

	tests := []struct {
		name        string
		renderer    *mock.HTTPRenderer
		ifNoneMatch string
		wantStatus  int
		wantBody    string
	}{
		{
			name:       "fresh listing",
			renderer:   &mock.HTTPRenderer{CatalogOut: []byte(`[{"name":"b"},{"name":"a"}]`), EtagCatalog: etag},
			wantStatus: http.StatusOK,
			wantBody:   `[{"name":"b"},{"name":"a"}]`,
		},
		{
			name:       "empty catalog",
			renderer:   &mock.HTTPRenderer{CatalogOut: []byte(`[]`), EtagCatalog: etag},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:        "not modified",
			renderer:    &mock.HTTPRenderer{CatalogOut: []byte(`[]`), EtagCatalog: etag},
			ifNoneMatch: etag,
			wantStatus:  http.StatusNotModified,
		},
		{
			name:       "persistence error",
			renderer:   &mock.HTTPRenderer{ListErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lister := &mock.AssetLister{}
			req := httptest.NewRequest(http.MethodGet, "/media/catalog", nil)
			if tc.ifNoneMatch != "" {
				req.Header.Set("If-None-Match", tc.ifNoneMatch)
			}
			rec := httptest.NewRecorder()

			ListAssetsHandler(tc.renderer, lister).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if !tc.renderer.ListCalled || tc.renderer.GotLister != lister {
				t.Error("renderer should be called with the lister")
			}
			if tc.wantStatus == http.StatusInternalServerError {
				return
			}
			if got := rec.Header().Get("ETag"); got != etag {
				t.Errorf("ETag = %q; want %q", got, etag)
			}
			if tc.wantStatus == http.StatusOK {
				if rec.Body.String() != tc.wantBody {
					t.Errorf("body = %s; want %s", rec.Body.String(), tc.wantBody)
				}
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
			}
		})
	}
}
