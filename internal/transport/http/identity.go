package http

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey int

const callerKey contextKey = iota

// Identity resolves the calling user from the request. The service does not
// do authentication itself; implementations bridge to whatever identity
// layer fronts the deployment.
type Identity interface {
	UserID(r *http.Request) (int64, bool)
}

// HeaderIdentity trusts an X-User-ID header set by an upstream proxy or
// gateway. Absent or unparseable headers mean an anonymous caller.
type HeaderIdentity struct{}

func (HeaderIdentity) UserID(r *http.Request) (int64, bool) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// withIdentity stores the resolved caller in the request context.
func withIdentity(identity Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := identity.UserID(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), callerKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// callerID returns the authenticated caller, or (0, false) for anonymous
// requests.
func callerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(callerKey).(int64)
	return id, ok
}
