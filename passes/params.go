package passes

import (
	"bytes"
	"encoding/json"
)

// decodeParams strictly decodes raw into v. Nil or empty raw leaves v
// at its defaults.
func decodeParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
