package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/anveshk/nestmark/internal/auth"
	"github.com/anveshk/nestmark/internal/auth/context/loggercontext"
	"github.com/anveshk/nestmark/internal/auth/context/usercontext"
	"github.com/anveshk/nestmark/internal/config"
	"github.com/anveshk/nestmark/internal/db"
	"github.com/anveshk/nestmark/internal/logging"
	"github.com/anveshk/nestmark/internal/models"
	"github.com/anveshk/nestmark/internal/preview"
	"github.com/anveshk/nestmark/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/jackc/pgx/v5/pgxpool"
)

func setupDb(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	err := db.Migrate(cfg.PgConnectionString())
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %v", err)
	}
	return pool, nil
}

func main() {
	cfg, err := config.LoadEnvConfig()
	if err != nil {
		panic(err)
	}

	logging.Init(cfg)
	defer logging.Sync()

	err = run(cfg)
	if err != nil {
		panic(err)
	}
}

func run(cfg *config.AppConfig) error {
	// Database
	pool, err := setupDb(cfg.PSQL)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Models
	sessionService := &models.SessionService{Pool: pool}
	bookmarkRepo := &models.BookmarkRepo{Pool: pool}
	folderRepo := &models.FolderRepo{Pool: pool}

	// Services
	resolver := preview.NewResolver(cfg.Preview, logging.Logger)
	writer := &service.BookmarkWriter{
		Store:    bookmarkRepo,
		Folders:  folderRepo,
		Resolver: resolver,
	}
	apiController := &service.Api{
		Writer:       writer,
		BookmarkRepo: bookmarkRepo,
		FolderRepo:   folderRepo,
	}
	bridgeController := service.NewBridge(writer, folderRepo, logging.Logger)

	// Middlewares
	umw := auth.UserMiddleware{
		SessionService: sessionService,
	}
	csrfMw := csrf.Protect(
		[]byte(cfg.CSRF.Key),
		csrf.Secure(cfg.CSRF.Secure),
		csrf.Path("/"),
		csrf.TrustedOrigins([]string{cfg.Domain}),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", healthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(umw.SetUser)
		r.Use(LoggerMiddleware(cfg.Environment == "production"))

		// Session probe and extension bridge stay outside RequireUser: a
		// missing session must come back as user-null, not a 401.
		r.Get("/get-session", apiController.SessionAPI)
		r.Post("/bridge", bridgeController.MessageAPI)

		r.Group(func(r chi.Router) {
			r.Use(umw.RequireUser)

			r.Route("/bookmarks", func(r chi.Router) {
				r.Get("/", apiController.IndexAPI)
				r.Post("/", apiController.CreateAPI)
				r.Put("/", apiController.UpdateAPI)
				r.Delete("/", apiController.DeleteAPI)
				r.Get("/recent", apiController.RecentAPI)
				r.Get("/note", apiController.NoteAPI)
			})
			r.Route("/folders", func(r chi.Router) {
				r.Get("/", apiController.FoldersAPI)
				r.Post("/", apiController.CreateFolderAPI)
				r.Put("/", apiController.UpdateFolderAPI)
				r.Delete("/", apiController.DeleteFolderAPI)
				r.Get("/resolve-path", apiController.ResolvePathAPI)
				r.Get("/subfolders", apiController.SubfoldersAPI)
			})
			r.Get("/search", apiController.SearchAPI)
		})
	})

	// Dashboard-facing routes share the cookie session, so they carry CSRF
	// protection on top of it.
	r.Group(func(r chi.Router) {
		r.Use(csrfMw)
		r.Use(umw.SetUser)
		r.Use(LoggerMiddleware(cfg.Environment == "production"))

		r.Route("/dashboard/api", func(r chi.Router) {
			r.Use(umw.RequireUser)
			r.Get("/bookmarks", apiController.IndexAPI)
			r.Post("/bookmarks", apiController.CreateAPI)
			r.Get("/search", apiController.SearchAPI)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	fmt.Printf("Starting server on %s...", cfg.Server.Address)
	return http.ListenAndServe(cfg.Server.Address, r)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

func LoggerMiddleware(isProduction bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t1 := time.Now()
			ctx := r.Context()
			reqLogger := logging.Logger.With(
				"req_path", r.URL.Path,
				"req_method", r.Method,
			)

			if user := usercontext.User(ctx); user != nil {
				reqLogger = reqLogger.With("user", user.ID)
			}
			ctx = loggercontext.WithLogger(ctx, reqLogger)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				reqLogger.Debugw("http request", "from", r.RemoteAddr, "status", ww.Status(), "size", ww.BytesWritten(), "duration", time.Since(t1))
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
