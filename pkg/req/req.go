package req

import (
	"encoding/json"
	"io"
)

// Decode читает JSON тело запроса в T
func Decode[T any](body io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}
