// Package middleware holds the cross-cutting http.Handler wrappers applied
// to every route: panic recovery, request logging and CORS.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSOptions configures Cors. Empty fields take the defaults below.
type CORSOptions struct {
	// AllowOrigins is a list of origins or a single "*".
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	MaxAge           int
	AllowCredentials bool
}

var (
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

// Cors adds CORS headers and answers preflight requests.
//
// With credentials enabled Access-Control-Allow-Origin is never "*": the
// request Origin is echoed when allowed.
func Cors(opts CORSOptions) func(http.Handler) http.Handler {
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := strings.Join(orDefault(opts.AllowMethods, defaultMethods), ", ")
	headers := strings.Join(orDefault(opts.AllowHeaders, defaultHeaders), ", ")
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 86400
	}
	wildcard := origins[0] == "*"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")

			allowed := origin != "" && (wildcard || slices.Contains(origins, origin))
			switch {
			case opts.AllowCredentials && allowed:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
			case !opts.AllowCredentials && wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			case allowed:
				h.Set("Access-Control-Allow-Origin", origin)
			}

			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", strconv.Itoa(maxAge))

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
