package httputils

import (
	"net/http"

	"github.com/nvellon/hal"

	"github.com/mutualnet/mutualpool/lib/common"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	if h, ok := v.(HALResource); ok {
		w.Header().Set("Content-Type", "application/hal+json")
		v = h.Resource()
	} else if e, ok := v.(error); ok {
		w.Header().Set("Content-Type", "application/problem+json")
		v = NewErrorProblem(e, code)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(code)

	// hal templated links and free-form evidence text must survive as-is
	bs, err := common.JSONMarshalWithoutEscapeHTML(v)
	if err != nil {
		return err
	}

	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

// MustWriteJSON panics if it fails to write the value as json. It should only
// be used on values the server itself produced.
func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		panic(err)
	}
}

// WriteJSONError writes the error to the http response, mapping the error
// code to a http status.
func WriteJSONError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if writeErr := WriteJSON(w, code, err); writeErr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
