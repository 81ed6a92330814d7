package http

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cwrk-planet/activity-service/internal/transport/ws"
	"github.com/cwrk-planet/activity-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Handler        *Handler
	WSServer       *ws.Server
	StaticDir      string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(httputil.MiddlewareLogging)
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	h := d.Handler
	r.Get("/", h.Root)

	if d.StaticDir != "" {
		r.Get(IndexPath, staticIndex(d.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))
	}

	if d.WSServer != nil {
		r.Get("/ws/activities/{name}", d.WSServer.HandleWS)
	}

	r.Group(func(api chi.Router) {
		if d.RequestTimeout > 0 {
			api.Use(middlewareChi.Timeout(d.RequestTimeout))
		}

		api.Route("/activities", func(ac chi.Router) {
			ac.Get("/", h.ListActivities)

			ac.Route("/{name}", func(an chi.Router) {
				an.Get("/", h.GetActivity)
				an.Post("/signup", h.Signup)
				an.Delete("/unregister", h.Unregister)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// staticIndex serves index.html at its own path; http.FileServer would
// redirect it to the directory.
func staticIndex(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := os.Open(filepath.Join(dir, "index.html"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		fi, err := f.Stat()
		if err != nil || fi.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
	}
}
