package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
)

func TestAPIKeyMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{"auth disabled", "", "", http.StatusOK},
		{"auth disabled ignores header", "", "whatever", http.StatusOK},
		{"missing key", "secret", "", http.StatusUnauthorized},
		{"wrong key", "secret", "nope", http.StatusUnauthorized},
		{"correct key", "secret", "secret", http.StatusOK},
		{"key with surrounding spaces", "secret", "  secret  ", http.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			handler := APIKeyMiddleware(tc.configured)(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("X-API-Key", tc.header)
			}
			rec := httptest.NewRecorder()

			if err := handler(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
