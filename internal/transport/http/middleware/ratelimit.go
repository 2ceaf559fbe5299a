package middleware

import (
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/shared"
)

const MsgTooManyRequests = "Demasiados pedidos deste IP, tente novamente mais tarde."

// RateLimit limits each client address to limit requests per window using an
// in-process store.
func RateLimit(limit int64, window time.Duration) func(http.Handler) http.Handler {
	return RateLimitWithStore(memory.NewStore(), limit, window)
}

func RateLimitWithStore(store limiter.Store, limit int64, window time.Duration) func(http.Handler) http.Handler {
	instance := limiter.New(store, limiter.Rate{Period: window, Limit: limit})
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(shared.ClientIP),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusTooManyRequests, MsgTooManyRequests, "")
		}),
	)
	return mw.Handler
}
