// Package content normalizes the free-form section payload between its
// persisted and structured forms. Storage may hand back either canonical
// JSON text or an already structured value depending on which path wrote the
// row, so Decode accepts both and produces the same shape.
package content

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnparsable reports a payload that could not be normalized to a
// string-keyed mapping. Callers degrade the owning section and continue;
// the error never aborts composition.
var ErrUnparsable = errors.New("content: unparsable payload")

// Payload is a section's free-form content: string keys mapping to
// JSON-compatible values (string, float64, bool, nil, nested mapping,
// sequence). Shape validation happens at the per-type dispatch boundary,
// not here.
type Payload = map[string]interface{}

// Encode renders a payload as canonical JSON text, the single persisted form.
func Encode(p Payload) (string, error) {
	if p == nil {
		p = Payload{}
	}
	out, err := json.MarshalToString(p)
	if err != nil {
		return "", errors.Wrap(err, "content: encode")
	}
	return out, nil
}

// Decode normalizes a stored content value to its structured form. It never
// panics; unparsable input yields ErrUnparsable.
func Decode(raw interface{}) (Payload, error) {
	switch v := raw.(type) {
	case nil:
		return Payload{}, nil
	case Payload:
		// Re-encode so pre-structured values (which may carry int or other
		// scalar kinds) normalize to the same shape as decoded text.
		text, err := Encode(v)
		if err != nil {
			return nil, ErrUnparsable
		}
		return decodeText(text)
	case string:
		return decodeText(v)
	case []byte:
		return decodeText(string(v))
	}
	return nil, ErrUnparsable
}

func decodeText(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Payload{}, nil
	}
	var value interface{}
	if err := json.UnmarshalFromString(s, &value); err != nil {
		return nil, ErrUnparsable
	}
	switch v := value.(type) {
	case map[string]interface{}:
		return v, nil
	case string:
		// Double-encoded text: a JSON string holding JSON. Unwrap one level.
		return decodeText(v)
	}
	return nil, ErrUnparsable
}
