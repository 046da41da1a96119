package pipeline

import "encoding/json"

// Payload is the unit of data flowing between stages. Stage outputs are
// persisted as JSON, so values must be JSON-encodable.
type Payload map[string]any

// Clone deep-copies the payload through a JSON round trip. The copy is
// fully detached, nested maps and slices included.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return Payload{}
	}
	var out Payload
	if err := json.Unmarshal(raw, &out); err != nil {
		return Payload{}
	}
	if out == nil {
		out = Payload{}
	}
	return out
}

// Encode marshals an arbitrary stage output struct into a Payload.
func Encode(v any) (Payload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// Decode unmarshals a Payload back into a typed stage output struct.
func Decode(p Payload, v any) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
