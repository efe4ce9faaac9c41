package shared_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ridgeline-builders/ridgeline/internal/shared"
	_ "github.com/ridgeline-builders/ridgeline/testing"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "forwarded single", headers: map[string]string{"X-Forwarded-For": "203.0.113.5"}, want: "203.0.113.5"},
		{name: "forwarded chain takes first", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1, 10.0.0.2"}, want: "203.0.113.5"},
		{name: "real ip fallback", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, want: "198.51.100.7"},
		{name: "forwarded wins over real ip", headers: map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "198.51.100.7"}, want: "203.0.113.5"},
		{name: "no headers", headers: nil, want: "unknown"},
		{name: "blank forwarded falls through", headers: map[string]string{"X-Forwarded-For": "  "}, want: "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, shared.ClientIP(req))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "kitchen-remodel-2025", shared.Slugify("Kitchen Remodel 2025"))
	assert.Equal(t, "creme-brulee-cafe-build-out", shared.Slugify("Crème Brûlée Café Build-Out"))
	assert.Equal(t, "deck-porch", shared.Slugify("  Deck & Porch!  "))
	assert.Equal(t, "", shared.Slugify("!!!"))
}

func TestUserSafeMessage(t *testing.T) {
	assert.Equal(t, "The requested record was not found", shared.UserSafeMessage(shared.ErrNotFound))
	assert.Equal(t, "A record with the same identifier already exists", shared.UserSafeMessage(shared.ErrDuplicate))
	assert.Equal(t, "Something went wrong, please try again", shared.UserSafeMessage(assert.AnError))
}

func TestPagination(t *testing.T) {
	p := shared.NewPagination(2, 20, 45)
	assert.Equal(t, 3, p.TotalPages)

	p = shared.NewPagination(0, 0, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}
