package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/dmarket/dmarket-api/internal/http/handlers"
	mw "github.com/dmarket/dmarket-api/internal/http/middleware"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(mw.RateLimit)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/login", handlers.LoginHandler)
	r.Get("/callback", handlers.CallbackHandler)
	r.Get("/logout", handlers.LogoutHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)

		r.Post("/products/create", handlers.CreateProductHandler)
		r.Put("/products/{id}/update", handlers.UpdateProductHandler)
		r.Delete("/products/{id}/delete", handlers.DeleteProductHandler)
		r.Get("/admin/check", handlers.CheckAdminHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)

			r.Post("/admin/set", handlers.SetAdminHandler)
			r.Get("/admin/users", handlers.ListUsersHandler)
			r.Get("/session", handlers.SessionHandler)
		})
	})

	return r
}
