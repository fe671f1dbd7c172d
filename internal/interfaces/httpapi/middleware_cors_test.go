package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantHeaders bool
	}{
		{
			name:        "configured origin",
			allowed:     []string{"https://serie-a.example.com"},
			method:      http.MethodGet,
			origin:      "https://serie-a.example.com",
			wantStatus:  http.StatusOK,
			wantOrigin:  "https://serie-a.example.com",
			wantHeaders: true,
		},
		{
			name:        "wildcard preflight",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      "https://serie-a.example.com",
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "*",
			wantHeaders: true,
		},
		{
			name:       "unconfigured origin",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/standings", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			CORS(tt.allowed, ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantHeaders {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), headerAPIKey)
			}
		})
	}
}
