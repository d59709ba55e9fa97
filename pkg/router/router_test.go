package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sweetshop/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutePaths(t *testing.T) {
	r := router.New()
	r.Get("/health", "health", ok)

	api := r.Group("/api")
	api.Post("/auth/login", "auth.login", ok)
	api.Group("/sweets").Post("/{id}/purchase", "sweets.purchase", ok)

	path, found := r.Path("sweets.purchase")
	require.True(t, found)
	assert.Equal(t, "/api/sweets/{id}/purchase", path, "group prefixes compose into the registered path")

	path, found = r.Path("auth.login")
	require.True(t, found)
	assert.Equal(t, "/api/auth/login", path)

	_, found = r.Path("no.such.route")
	assert.False(t, found)
}

func TestRoutesSorted(t *testing.T) {
	r := router.New()
	r.Get("/b", "b", ok)
	r.Get("/a", "a", ok)
	r.Post("/a", "a.post", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodGet, infos[0].Method)
	assert.Equal(t, http.MethodPost, infos[1].Method)
	assert.Equal(t, "/b", infos[2].Path)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	r.Group("/api", tag("outer")).Group("/sweets", tag("inner")).Get("", "sweets.list", ok, tag("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/sweets", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner", "route"}, order,
		"outer group middleware runs before inner, route-level last")
}
