package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mutualnet/mutualpool/lib/metrics"
	"github.com/mutualnet/mutualpool/lib/network/httputils"
)

func RecoverMiddleware(printStack bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.WriteJSONError(w, err)
					log.Error("recover an panic", "err", err)
					if printStack == true {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func MetricsMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			writer := &ResponseLog15Writer{w: w}
			begin := time.Now()
			next.ServeHTTP(writer, r)

			status := strconv.Itoa(writer.Status())
			labels := []string{"endpoint", endpoint, "method", r.Method, "status", status}
			metrics.API.RequestsTotal.With(labels...).Add(1)
			if writer.Status() >= 400 {
				metrics.API.RequestErrorsTotal.With(labels...).Add(1)
			}
			metrics.API.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())
		})
	}
}
