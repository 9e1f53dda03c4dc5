//go:build !dev

package api

import (
	"net/http"
	"testing"
)

func TestPprof_NotMounted(t *testing.T) {
	untrusted := ""
	router, _ := newTestRouter(t, mergeRenderer(&untrusted))

	if rec := get(t, router, "/debug/pprof/"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected profiler to be absent, got %d", rec.Code)
	}
}
