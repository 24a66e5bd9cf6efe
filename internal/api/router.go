package api

import (
	"net/http"

	"github.com/ekaraslan/portfolio-be/internal/api/handlers"
	"github.com/ekaraslan/portfolio-be/internal/auth"
	"github.com/ekaraslan/portfolio-be/internal/config"
	appmw "github.com/ekaraslan/portfolio-be/internal/middleware"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/ekaraslan/portfolio-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps bundles everything the router needs.
type Deps struct {
	Cfg       *config.Config
	Hub       *websocket.Hub
	Blocklist *appmw.Blocklist

	// Exposed so the janitor can sweep them.
	GeneralLimiter *appmw.RateLimiter
	LoginLimiter   *appmw.RateLimiter

	Users    services.UserServiceProvider
	Sessions services.SessionServiceProvider
	Events   services.EventServiceProvider
	Catalog  services.CatalogServiceProvider
	Projects services.ProjectServiceProvider
	Blogs    services.BlogServiceProvider
	Contacts services.ContactServiceProvider
	Content  services.ContentServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d *Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Blocklisted clients are rejected before anything else runs.
	r.Use(appmw.IPFilter(d.Blocklist))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Users, d.Sessions, d.Events, d.Hub, d.LoginLimiter,
		d.Cfg.IsProduction(), d.Cfg.RevokeSessionsOnPasswordChange)
	serviceHandler := handlers.NewServiceHandler(d.Catalog)
	projectHandler := handlers.NewProjectHandler(d.Projects)
	blogHandler := handlers.NewBlogHandler(d.Blogs)
	contactHandler := handlers.NewContactHandler(d.Contacts, d.Events, d.Hub)
	contentHandler := handlers.NewContentHandler(d.Content)
	uploadHandler := handlers.NewUploadHandler(d.Cfg.UploadPath)
	eventHandler := handlers.NewEventHandler(d.Events)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.Users)

	authenticate := auth.Authenticate(d.Users)

	// Uploaded images are served as static files, outside the API rate limit.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.Cfg.UploadPath))))

	r.Route("/api", func(r chi.Router) {
		r.Use(appmw.RateLimit(d.GeneralLimiter, "Too many requests from this IP, please try again later."))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"OK","message":"Server is running"}`))
		})

		// Admin live event feed; authenticates during the upgrade.
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			// Login throttles itself on failed attempts only.
			r.Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", serviceHandler.List)
			r.Get("/{slug}", serviceHandler.GetBySlug)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, auth.RequireAdmin)
				r.Get("/admin/all", serviceHandler.AdminList)
				r.Post("/", serviceHandler.Create)
				r.Put("/{id}", serviceHandler.Update)
				r.Delete("/{id}", serviceHandler.Delete)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/{slug}", projectHandler.GetBySlug)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, auth.RequireAdmin)
				r.Get("/admin/all", projectHandler.AdminList)
				r.Post("/", projectHandler.Create)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Get("/{slug}", blogHandler.GetBySlug)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, auth.RequireAdmin)
				r.Get("/admin/all", blogHandler.AdminList)
				r.Post("/", blogHandler.Create)
				r.Put("/{id}", blogHandler.Update)
				r.Delete("/{id}", blogHandler.Delete)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactHandler.Create)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, auth.RequireAdmin)
				r.Get("/", contactHandler.List)
				r.Get("/{id}", contactHandler.Get)
				r.Put("/{id}", contactHandler.Update)
				r.Delete("/{id}", contactHandler.Delete)
			})
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", contentHandler.Get)
			r.With(authenticate, auth.RequireAdmin).Put("/", contentHandler.Save)
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(authenticate, auth.RequireAdmin)
			r.Post("/", uploadHandler.Single)
			r.Post("/single", uploadHandler.Single)
			r.Post("/multiple", uploadHandler.Multiple)
		})

		r.With(authenticate, auth.RequireAdmin).Get("/events", eventHandler.Recent)
	})

	return r
}
