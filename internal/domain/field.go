package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNoData is returned when a request body is missing, unparseable or an
// empty object.
var ErrNoData = errors.New("No data provided")

// Field is a JSON value that remembers whether its key was present in the
// payload. A present null sets Null and leaves Value at its zero value.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Present reports whether the key was supplied with a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Payload records how many keys the decoded JSON object carried, so an empty
// object can be told apart from one holding only unrecognized keys.
type Payload struct {
	keys int
}

// Provided reports whether the object carried at least one key.
func (p Payload) Provided() bool {
	return p.keys > 0
}

func (p *Payload) setKeys(n int) {
	p.keys = n
}

type keyed interface {
	setKeys(n int)
}

// Fields is implemented by the per-entity field sets. Missing lists the
// required keys that are absent or null, Validate checks the supplied values
// and Apply copies the supplied values onto rec, returning the columns it set.
type Fields[T any] interface {
	Provided() bool
	Missing() []string
	Validate() error
	Apply(rec *T) []string
}

// DecodeFields parses a JSON object body into dst. It returns ErrNoData when
// the body is empty, not an object or an object without keys; a value of the
// wrong type is reported as a validation message naming the field.
func DecodeFields(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrNoData
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return ErrNoData
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("Invalid value for field %s: expected %s", typeErr.Field, typeErr.Type)
		}
		return ErrNoData
	}
	if k, ok := dst.(keyed); ok {
		k.setKeys(len(raw))
	}
	return nil
}

func checkLength(name string, f Field[string], max int) error {
	if f.Present() && utf8.RuneCountInString(f.Value) > max {
		return fmt.Errorf("%s must not exceed %d characters", name, max)
	}
	return nil
}

func checkOptionalLength(name string, f Field[*string], max int) error {
	if f.Present() && f.Value != nil && utf8.RuneCountInString(*f.Value) > max {
		return fmt.Errorf("%s must not exceed %d characters", name, max)
	}
	return nil
}

func checkNotNull(name string, f Field[string]) error {
	if f.Set && f.Null {
		return fmt.Errorf("%s must not be null", name)
	}
	return nil
}

func missing(fields map[string]bool, order ...string) []string {
	var out []string
	for _, name := range order {
		if !fields[name] {
			out = append(out, name)
		}
	}
	return out
}

// joinErrors folds the non-nil errors into one, messages separated by "; ".
func joinErrors(errs ...error) error {
	var msgs []string
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}
