package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"hrpro/internal/transport/http/api"
)

// Recoverer turns a handler panic into the generic 500 body.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			zerolog.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("stack_trace", string(debug.Stack())).
				Msg("recovered from panic")
			api.Fail(w, http.StatusInternalServerError, api.MsgInternal, "")
		}()
		next.ServeHTTP(w, r)
	})
}
