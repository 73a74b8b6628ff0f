package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/vocabvoyage-backend/pkg/ctxutil"
)

func TestRequestID_ReuseIncoming(t *testing.T) {
	t.Parallel()

	incomingID := uuid.NewString()
	var gotID string

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ctxutil.RequestIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incomingID)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if gotID != incomingID {
		t.Errorf("context request id = %q, want %q", gotID, incomingID)
	}
	if got := rec.Header().Get(RequestIDHeader); got != incomingID {
		t.Errorf("%s header = %q, want %q", RequestIDHeader, got, incomingID)
	}
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
	}{
		{"missing", ""},
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
		{"contains space", "abc def"},
		{"control char", "abc\x01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = ctxutil.RequestIDFromCtx(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if _, err := uuid.Parse(gotID); err != nil {
				t.Errorf("context request id %q is not a UUID: %v", gotID, err)
			}
			if got := rec.Header().Get(RequestIDHeader); got != gotID {
				t.Errorf("%s header = %q, want %q", RequestIDHeader, got, gotID)
			}
		})
	}
}
