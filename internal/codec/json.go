package codec

import "encoding/json"

// JSON is a Codec that serializes values using encoding/json.
// The zero value is ready to use.
type JSON[V any] struct{}

// Encode marshals v with encoding/json.
func (JSON[V]) Encode(v V) ([]byte, error) {
	return json.Marshal(v)
}

// Decode unmarshals b into a fresh V.
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
