package types

import "encoding/json"

// Envelope is the uniform response shape returned by every API endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
}

// DecodeData unmarshals the envelope payload into dest. A missing data field
// leaves dest untouched so callers keep their zero values.
func (e Envelope) DecodeData(dest any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, dest)
}

// Pagination is returned by list endpoints inside the data payload.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
