package network

import (
	"fmt"
	goLog "log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"

	"github.com/mutualnet/mutualpool/lib/common"
	"github.com/mutualnet/mutualpool/lib/errors"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metric"
)

var (
	UrlPathPrefixAPI    = fmt.Sprintf("/%s", RouterNameAPI)
	UrlPathPrefixMetric = fmt.Sprintf("/%s", RouterNameMetric)
)

type ServerConfig struct {
	Endpoint *common.Endpoint
	Addr     string

	NodeName string

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	TLSCertFile string
	TLSKeyFile  string
}

func NewServerConfigFromEndpoint(endpoint *common.Endpoint) (config *ServerConfig, err error) {
	query := endpoint.Query()

	config = &ServerConfig{
		Endpoint:          endpoint,
		Addr:              endpoint.Host,
		ReadTimeout:       0,
		ReadHeaderTimeout: 0,
		WriteTimeout:      0,
		IdleTimeout:       5 * time.Second,
	}

	if v := query.Get("ReadTimeout"); len(v) > 0 {
		if config.ReadTimeout, err = time.ParseDuration(v); err != nil {
			return
		}
	}
	if v := query.Get("WriteTimeout"); len(v) > 0 {
		if config.WriteTimeout, err = time.ParseDuration(v); err != nil {
			return
		}
	}
	if v := query.Get("IdleTimeout"); len(v) > 0 {
		if config.IdleTimeout, err = time.ParseDuration(v); err != nil {
			return
		}
	}

	if endpoint.Scheme == "https" {
		config.TLSCertFile = query.Get("TLSCertFile")
		config.TLSKeyFile = query.Get("TLSKeyFile")
	}

	return
}

// Server is the HTTP face of a pool node. The base router carries two
// subrouters, one for the public API and one for metrics, so middlewares can
// be attached per concern.
type Server struct {
	tlsCertFile string
	tlsKeyFile  string

	server    *http.Server
	router    *mux.Router
	rootRoute *mux.Route

	ready bool

	routers map[string]*mux.Router

	config *ServerConfig
	log    logging.Logger
}

func NewServer(config *ServerConfig) (s *Server) {
	httpLog := log.New(logging.Ctx{"module": "http", "node": config.NodeName})
	errorLog := goLog.New(ErrorLog15Writer{httpLog}, "", 0)

	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          errorLog,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	baseRouter := mux.NewRouter()

	s = &Server{
		server:      server,
		router:      baseRouter,
		tlsCertFile: config.TLSCertFile,
		tlsKeyFile:  config.TLSKeyFile,
		config:      config,
		log:         httpLog,
	}
	s.routers = map[string]*mux.Router{
		RouterNameAPI:    baseRouter.PathPrefix(UrlPathPrefixAPI).Subrouter(),
		RouterNameMetric: baseRouter.PathPrefix(UrlPathPrefixMetric).Subrouter(),
	}

	s.setNotReadyHandler()

	return
}

func (s *Server) Endpoint() *common.Endpoint {
	return s.config.Endpoint
}

func (s *Server) setNotReadyHandler() {
	s.rootRoute = s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !s.ready {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	})

	s.server.Handler = Log15Handler{log: s.log, handler: s.router}
}

func (s *Server) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) error {
	var r *mux.Router
	if len(routerName) < 1 {
		r = s.router
	} else {
		var ok bool
		if r, ok = s.routers[routerName]; !ok {
			return errors.NotMatchHTTPRouter
		}
	}
	for _, mw := range mws {
		r.Use(mw)
	}
	return nil
}

func (s *Server) AddHandler(pattern string, handler http.HandlerFunc) (route *mux.Route) {
	var routerName string
	var prefix string
	switch {
	case strings.HasPrefix(pattern, UrlPathPrefixAPI):
		routerName = RouterNameAPI
		prefix = pattern[len(UrlPathPrefixAPI):]
	case strings.HasPrefix(pattern, UrlPathPrefixMetric):
		routerName = RouterNameMetric
		prefix = pattern[len(UrlPathPrefixMetric):]
	default:
		if pattern == "" || pattern == "/" {
			return s.rootRoute.Handler(handler)
		}
		return s.router.HandleFunc(pattern, handler)
	}

	r := s.routers[routerName]

	// if a pattern has a suffix *, the router sets path prefix and handler
	if strings.HasSuffix(prefix, "*") {
		pathPrefix := strings.TrimSuffix(prefix, "*")
		return r.PathPrefix(pathPrefix).Handler(handler)
	}
	return r.HandleFunc(prefix, handler)
}

func (s *Server) Ready() {
	s.server.Handler = Log15Handler{log: s.log, handler: s.router}

	s.ready = true
}

// Start will start the server. It blocks until finished, either because of an
// error or because `Stop` was called.
func (s *Server) Start() (err error) {
	if strings.ToLower(s.config.Endpoint.Scheme) == "http" {
		err = s.server.ListenAndServe()
	} else {
		err = s.server.ListenAndServeTLS(s.tlsCertFile, s.tlsKeyFile)
	}
	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (s *Server) Stop() {
	s.server.Close()
}
