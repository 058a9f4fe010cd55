// Package codec centralizes JSON serialization so every collaborator encodes
// state and results the same way.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Encode serializes value as JSON.
func Encode(value any) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrap(err, "error marshalling to json")
	}
	return bz, nil
}

// Decode deserializes JSON bytes into a T.
func Decode[T any](bz []byte) (T, error) {
	var value T
	if err := json.Unmarshal(bz, &value); err != nil {
		return value, eris.Wrap(err, "error unmarshalling from json")
	}
	return value, nil
}
