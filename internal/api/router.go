package api

import (
	"net/http"

	"github.com/erazemk/polica/internal/config"
	"github.com/erazemk/polica/internal/inventory"
	"github.com/erazemk/polica/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(store *inventory.Store, registry *service.Registry, authCfg config.AuthConfig) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{
		Username:     authCfg.Username,
		PasswordHash: authCfg.PasswordHash,
		JWTSecret:    authCfg.JWTSecret,
	}
	itemsHandler := &ItemsHandler{Store: store}
	servicesHandler := &ServicesHandler{Registry: registry}

	authMW := AuthMiddleware(authCfg.JWTSecret)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Items.
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(http.HandlerFunc(itemsHandler.Create)))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PATCH /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Delete)))
	mux.Handle("PUT /api/items/{id}/area", authMW(http.HandlerFunc(itemsHandler.MoveArea)))
	mux.Handle("PUT /api/items/{id}/zone", authMW(http.HandlerFunc(itemsHandler.SetZone)))
	mux.Handle("POST /api/items/{id}/photo", authMW(http.HandlerFunc(itemsHandler.UploadPhoto)))
	mux.Handle("POST /api/items/{id}/photo-url", authMW(http.HandlerFunc(itemsHandler.PhotoFromURL)))

	// Categories (read-only).
	mux.Handle("GET /api/categories", authMW(http.HandlerFunc(itemsHandler.ListCategories)))

	// Named service dispatch.
	mux.Handle("GET /api/services", authMW(http.HandlerFunc(servicesHandler.List)))
	mux.Handle("POST /api/services/{name}", authMW(http.HandlerFunc(servicesHandler.Call)))

	return mux
}
