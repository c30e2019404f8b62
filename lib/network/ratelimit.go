package network

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
	"github.com/mutualnet/mutualpool/lib/network/httputils"
)

// RateLimitMiddleware throttles requests per remote address with an in-memory
// store. Addresses found in `rule.ByIPAddress` get their own rate; a rate
// with `Limit` of zero turns the limit off for that address.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	defaultLimiter := limiter.New(memory.NewStore(), rule.Default)
	byIPAddress := map[string]*limiter.Limiter{}
	for ip, rate := range rule.ByIPAddress {
		byIPAddress[ip] = limiter.New(memory.NewStore(), rate)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := limiter.GetIP(r).String()

			l := defaultLimiter
			if found, ok := byIPAddress[ip]; ok {
				l = found
			}
			if l.Rate.Limit < 1 { // unlimited
				next.ServeHTTP(w, r)
				return
			}

			context, err := l.Get(r.Context(), ip)
			if err != nil {
				logger.Error("failed to check rate limit", "err", err, "remote", ip)
				httputils.WriteJSONError(w, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

			if context.Reached {
				logger.Warn("request reached rate limit", "remote", ip)
				httputils.WriteJSONError(w, errors.TooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
