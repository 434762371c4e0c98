package hc

import (
	"net/http"
	"time"

	"redbank/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle reports version and uptime since process start
func Handle(version string) http.Handler {
	started := time.Now()

	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, render.H{
			"uptime":  time.Since(started).Truncate(time.Millisecond).String(),
			"version": version,
		})
	}))

	return r
}
