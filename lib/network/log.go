package network

import (
	"net/http"

	logging "github.com/inconshreveable/log15"

	"github.com/mutualnet/mutualpool/lib/common"
)

type ErrorLog15Writer struct {
	l logging.Logger
}

func (w ErrorLog15Writer) Write(b []byte) (int, error) {
	w.l.Error("error", "error", string(b))
	return 0, nil
}

type ResponseLog15Writer struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (l *ResponseLog15Writer) Header() http.Header {
	return l.w.Header()
}

func (l *ResponseLog15Writer) Write(b []byte) (int, error) {
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *ResponseLog15Writer) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

func (l *ResponseLog15Writer) Status() int {
	if l.status == 0 {
		return http.StatusOK
	}
	return l.status
}

func (l *ResponseLog15Writer) Size() int {
	return l.size
}

func (l *ResponseLog15Writer) Flush() {
	f, ok := l.w.(http.Flusher)
	if ok {
		f.Flush()
	}
}

type Log15Handler struct {
	log     logging.Logger
	handler http.Handler
}

var HeaderKeyFiltered []string = []string{
	"Content-Length",
	"Content-Type",
	"Accept",
	"Accept-Encoding",
	"User-Agent",
}

// ServeHTTP will log in 2 phase, when request received and response sent. This
// was derived from github.com/gorilla/handlers/handlers.go
func (l Log15Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid := common.GenerateUUID()

	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	header := http.Header{}
	for key, value := range r.Header {
		if _, found := common.InStringArray(HeaderKeyFiltered, key); found {
			continue
		}
		header[key] = value
	}

	l.log.Debug(
		"request",
		"content-length", r.ContentLength,
		"content-type", r.Header.Get("Content-Type"),
		"headers", header,
		"host", r.Host,
		"id", uid,
		"method", r.Method,
		"proto", r.Proto,
		"referer", r.Referer(),
		"remote", r.RemoteAddr,
		"uri", uri,
		"user-agent", r.UserAgent(),
	)

	writer := &ResponseLog15Writer{w: w}
	l.handler.ServeHTTP(writer, r)

	l.log.Debug(
		"response",
		"id", uid,
		"status", writer.Status(),
		"size", writer.Size(),
	)
}
