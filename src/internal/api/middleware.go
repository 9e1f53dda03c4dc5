package api

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/mergehosts/mergehosts/src/internal/log"
)

// Logger middleware logs all HTTP requests.
func Logger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			logger.Infof("%s %s - %d (%v)", r.Method, r.URL.Path, wrapped.statusCode, duration)
		})
	}
}

// Recovery middleware recovers from panics and returns a 500 error.
func Recovery(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Errorf("Panic recovered: %v", err)
					WriteInternalError(w, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// PrivateSubnetOnly rejects clients outside loopback, RFC 1918, ULA and
// link-local ranges. The client address honors X-Forwarded-For and X-Real-IP.
func PrivateSubnetOnly(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := clientAddr(r)
			addr, err := netip.ParseAddr(clientIP)
			if err != nil {
				logger.Warnf("Rejecting request with unparsable client address %q", clientIP)
				WriteForbidden(w, "Access denied")
				return
			}

			if !isPrivateAddr(addr.Unmap()) {
				logger.Warnf("Rejecting %s %s from %s", r.Method, r.URL.Path, clientIP)
				WriteForbidden(w, "Access denied: only private networks are allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPrivateAddr(addr netip.Addr) bool {
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast()
}

func clientAddr(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
