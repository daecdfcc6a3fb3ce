package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gadgeto/storefront/internal/handler"
	"github.com/gadgeto/storefront/internal/middleware"
	"github.com/gadgeto/storefront/internal/setup"
)

func SetupRouter(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	// Server-rendered pages: allow own styles, nothing else
	csp := "default-src 'self'; img-src 'self' https: data:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"
	r.Use(middleware.SecurityHeaders(deps.Public.SecureCookies, csp))

	r.Use(middleware.GenerateCSRFToken(middleware.CSRFConfig{SecureCookies: deps.Public.SecureCookies}))
	r.Use(middleware.ValidateCSRFToken())

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/favicon.ico", handler.FaviconHandler)
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))),
	)

	h := deps.Handler
	authMw := deps.Auth

	// Public storefront routes; user context is optional so the header can
	// show who is signed in
	public := r.NewRoute().Subrouter()
	public.Use(authMw.OptionalAuth())
	public.HandleFunc("/", h.HomeGetHandler).Methods("GET")
	public.HandleFunc("/products", h.ProductsGetHandler).Methods("GET")
	public.HandleFunc("/products/{id:[0-9]+}", h.ProductGetHandler).Methods("GET")
	public.HandleFunc("/login", h.LoginGetHandler).Methods("GET")
	public.HandleFunc("/login", h.LoginPostHandler).Methods("POST")

	// Any signed-in user
	loggedIn := r.NewRoute().Subrouter()
	loggedIn.Use(authMw.NeedAuth())
	loggedIn.HandleFunc("/logout", h.LogoutHandler).Methods("POST")
	loggedIn.HandleFunc("/seller/dashboard", h.SellerDashboardGetHandler).Methods("GET")

	// Admin back office
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(authMw.AdminOnly())
	admin.HandleFunc("/dashboard", h.DashboardGetHandler).Methods("GET")
	admin.HandleFunc("/register", h.RegisterGetHandler).Methods("GET")
	admin.HandleFunc("/register", h.RegisterPostHandler).Methods("POST")
	admin.HandleFunc("/delete/request", h.DeleteRequestHandler).Methods("POST")
	admin.HandleFunc("/delete/cancel", h.DeleteCancelHandler).Methods("POST")
	admin.HandleFunc("/delete/confirm", h.DeleteConfirmHandler).Methods("POST")
	admin.HandleFunc("/status", h.StatusToggleHandler).Methods("POST")
	admin.HandleFunc("/status/{id:[0-9]+}", h.StatusGetHandler).Methods("GET")

	return r
}
