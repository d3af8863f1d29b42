// Package jsonbody decodes request bodies with sonic. Decode is lenient about
// unknown fields; DecodeStrict rejects them, which is what partial updates use.
package jsonbody

import (
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

var (
	lenient = sonic.Config{UseInt64: true}.Froze()
	strict  = sonic.Config{UseInt64: true, DisallowUnknownFields: true}.Froze()
)

// ErrEmptyBody is returned when the request carries no JSON at all.
var ErrEmptyBody = errors.New("request body is empty")

// MalformedError describes a body that is not valid JSON for the target type.
type MalformedError struct {
	Err error
}

func (e *MalformedError) Error() string { return "malformed request body: " + e.Err.Error() }
func (e *MalformedError) Unwrap() error { return e.Err }

func Decode(r io.Reader, dst any) error {
	return decode(lenient, r, dst)
}

func DecodeStrict(r io.Reader, dst any) error {
	return decode(strict, r, dst)
}

func decode(api sonic.API, r io.Reader, dst any) error {
	if r == nil {
		return ErrEmptyBody
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(b) == 0 {
		return ErrEmptyBody
	}
	if err := api.Unmarshal(b, dst); err != nil {
		return &MalformedError{Err: err}
	}
	return nil
}
