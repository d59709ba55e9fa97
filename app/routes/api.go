// Package routes declares every HTTP endpoint of the sweet shop and the
// middleware each one sits behind.
package routes

import (
	"time"

	"github.com/shashiranjanraj/sweetshop/app/controllers"
	"github.com/shashiranjanraj/sweetshop/app/models"
	"github.com/shashiranjanraj/sweetshop/pkg/metrics"
	"github.com/shashiranjanraj/sweetshop/pkg/middleware"
	"github.com/shashiranjanraj/sweetshop/pkg/rbac"
	"github.com/shashiranjanraj/sweetshop/pkg/reqid"
	"github.com/shashiranjanraj/sweetshop/pkg/router"
)

// RegisterAPI mounts the full route table.
//
// Three tiers: public (health, metrics, auth), authenticated (catalogue reads,
// purchase, token probe) and admin (every mutation of the catalogue itself).
func RegisterAPI(r *router.Router, auth *controllers.AuthController, sweets *controllers.SweetController) {
	r.Use(
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	r.Get("/health", "health", controllers.Health)
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Login and registration carry a tighter rate limit than the rest of the
	// API: they are the only endpoints worth brute-forcing.
	public := api.Group("/auth", middleware.RateLimit(20, time.Minute))
	public.Post("/register", "auth.register", auth.Register)
	public.Post("/login", "auth.login", auth.Login)

	authed := api.Group("", middleware.Auth)
	authed.Get("/protected", "auth.protected", auth.Protected)
	authed.Get("/sweets", "sweets.list", sweets.List)
	authed.Get("/sweets/search", "sweets.search", sweets.Search)
	authed.Post("/sweets/{id}/purchase", "sweets.purchase", sweets.Purchase)

	admin := authed.Group("/sweets", rbac.HasRole(models.RoleAdmin))
	admin.Post("", "sweets.create", sweets.Create)
	admin.Get("/revenue", "sweets.revenue", sweets.Revenue)
	admin.Post("/{id}/restock", "sweets.restock", sweets.Restock)
	admin.Put("/{id}", "sweets.update", sweets.Update)
	admin.Delete("/{id}", "sweets.delete", sweets.Delete)
	admin.Post("/{id}/image", "sweets.image", sweets.UploadImage)
}
