package adapter

import (
	"encoding/json"
)

// JSON decodes and encodes payloads exchanged with external services, such as the
// Nominatim search responses read by the geocoding client. Tests replace it with
// mocks.MockJSON to simulate malformed bodies.
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// RealJSON is the encoding/json backed implementation used in production
type RealJSON struct{}

// NewJSON creates the production JSON codec
func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
