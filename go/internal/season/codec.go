package season

import (
	"encoding/json"
)

// jsonCodec lets the connect handlers exchange plain Go structs as JSON, so the
// service needs no generated protobuf types
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
