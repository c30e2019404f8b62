package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
)

func testMakeServer(t *testing.T) *Server {
	endpoint, err := common.ParseEndpoint("http://localhost:12345")
	require.Nil(t, err)

	config, err := NewServerConfigFromEndpoint(endpoint)
	require.Nil(t, err)

	return NewServer(config)
}

func serverGet(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestServerNotReady(t *testing.T) {
	s := testMakeServer(t)

	w := serverGet(s, "/")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServerAddHandlerDispatch(t *testing.T) {
	s := testMakeServer(t)

	s.AddHandler(UrlPathPrefixAPI+"/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("api"))
	})
	s.AddHandler(UrlPathPrefixMetric+"*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("metric"))
	})
	s.Ready()

	{ // handler under the api subrouter
		w := serverGet(s, UrlPathPrefixAPI+"/ping")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "api", w.Body.String())
	}

	{ // the trailing `*` catches every path under the prefix
		w := serverGet(s, UrlPathPrefixMetric+"/anything/here")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "metric", w.Body.String())
	}

	{ // unknown paths fall through to mux's not found
		w := serverGet(s, "/unknown")
		require.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestServerAddMiddlewareUnknownRouter(t *testing.T) {
	s := testMakeServer(t)

	err := s.AddMiddleware("nope", func(next http.Handler) http.Handler { return next })
	require.Equal(t, errors.NotMatchHTTPRouter, err)
}
