package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/zkc/leo/parser"
	"github.com/dhamidi/zkc/leo/span"
)

// ErrorJSONEncoder writes parse errors for tools that consume JSON.
type ErrorJSONEncoder struct {
	w io.Writer
}

func NewErrorJSONEncoder(w io.Writer) *ErrorJSONEncoder {
	return &ErrorJSONEncoder{w: w}
}

type jsonError struct {
	Kind     string    `json:"kind"`
	Message  string    `json:"message"`
	Span     span.Span `json:"span"`
	Expected []string  `json:"expected,omitempty"`
	Got      string    `json:"got,omitempty"`
}

// Encode writes err, which may be a single *parser.Error or an
// ErrorList, as a JSON array.
func (e *ErrorJSONEncoder) Encode(err error) error {
	text, merr := e.MarshalText(err)
	if merr != nil {
		return merr
	}
	_, werr := e.w.Write(append(text, '\n'))
	return werr
}

func (e *ErrorJSONEncoder) MarshalText(err error) ([]byte, error) {
	return json.MarshalIndent(errorsToJSON(err), "", "  ")
}

func errorsToJSON(err error) []jsonError {
	var list parser.ErrorList
	var single *parser.Error
	switch {
	case errors.As(err, &list):
	case errors.As(err, &single):
		list = parser.ErrorList{single}
	case err != nil:
		return []jsonError{{Kind: "Unknown", Message: err.Error()}}
	}

	out := make([]jsonError, 0, len(list))
	for _, perr := range list {
		je := jsonError{
			Kind:    perr.Kind.String(),
			Message: perr.Message,
			Span:    perr.Span,
		}
		for _, exp := range perr.Expected {
			je.Expected = append(je.Expected, exp.String())
		}
		if perr.Got != nil {
			je.Got = perr.Got.Literal
		}
		out = append(out, je)
	}
	return out
}
