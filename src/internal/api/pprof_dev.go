//go:build dev

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// registerPprof exposes /debug/pprof/ and /debug/vars in dev builds.
func registerPprof(r chi.Router) {
	r.Mount("/debug", middleware.Profiler())
}
