package backend

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type Kind int

const (
	// KindNetwork means no response was received.
	KindNetwork Kind = iota + 1
	// KindBackend means the backend answered with a non-2xx status.
	KindBackend
	// KindDecode means a 2xx body did not match the expected shape.
	KindDecode
	// KindRequest means the request could not be built locally.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindBackend:
		return "backend"
	case KindDecode:
		return "decode"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Error is the normalized failure of a backend call. Message holds the
// human-readable detail when one is available and is empty otherwise.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) MessageOr(fallback string) string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return fallback
}

// MessageOr returns the display message carried by err, or fallback when err
// is not a *Error or carries no detail.
func MessageOr(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) {
		return be.MessageOr(fallback)
	}
	return fallback
}

func IsKind(err error, kind Kind) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == kind
}

// detailMessage reads the optional "detail" field of an error body. FastAPI
// sends either a string or a list of {loc, msg, type} objects.
func detailMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	detail := gjson.GetBytes(body, "detail")
	switch {
	case !detail.Exists():
		return ""
	case detail.Type == gjson.String:
		return strings.TrimSpace(detail.String())
	case detail.IsArray():
		parts := make([]string, 0, 4)
		detail.ForEach(func(_, item gjson.Result) bool {
			msg := item.String()
			if item.IsObject() {
				msg = item.Get("msg").String()
			}
			if msg = strings.TrimSpace(msg); msg != "" {
				parts = append(parts, msg)
			}
			return true
		})
		return strings.Join(parts, "; ")
	case detail.IsObject():
		return strings.TrimSpace(detail.Get("msg").String())
	default:
		return ""
	}
}
