package httputils

import (
	"fmt"
	"net/http"

	"github.com/mutualnet/mutualpool/lib/errors"
)

// Problem is the error payload of the API, following RFC 7807.
type Problem struct {
	// "type" (string) - A URI reference [RFC3986] that identifies the
	// problem type. When this member is not present, its value is assumed
	// to be "about:blank".
	Type string `json:"type"`

	// "title" (string) - A short, human-readable summary of the problem
	// type. It SHOULD NOT change from occurrence to occurrence of the
	// problem.
	Title string `json:"title"`

	// "status" (number) - The HTTP status code generated by the origin
	// server for this occurrence of the problem.
	Status int `json:"status,omitempty"`

	// "detail" (string) - A human-readable explanation specific to this
	// occurrence of the problem.
	Detail string `json:"detail,omitempty"`

	// "instance" (string) - A URI reference that identifies the specific
	// occurrence of the problem.
	Instance string `json:"instance,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Status: status, Title: http.StatusText(status)}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes a Problem from an error. Coded errors carry their
// code in the problem type so clients can match on it.
func NewErrorProblem(err error, status int) Problem {
	p := Problem{Status: status}
	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://github.com/mutualnet/mutualpool/problems/error-%03d", e.Code)
		p.Title = e.Message
	} else {
		p.Type = "about:blank"
		p.Title = err.Error()
	}
	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}
