package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// SessionKey carries the opaque browser-session id through the request
// context.
const SessionKey contextKey = "session"

// SessionHeader is set by the browser client on every call; the server
// generates an id on first contact and echoes it back so the client can
// stick to it.
const SessionHeader = "X-Session-ID"

// Session extracts or creates the session id and stores it in the request
// context. Session ids are opaque; nothing is derived from them.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(SessionHeader, id)
		ctx := context.WithValue(r.Context(), SessionKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID reads the session id placed by the Session middleware.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionKey).(string)
	return id
}
