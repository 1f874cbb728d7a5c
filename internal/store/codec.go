package store

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current version of the persisted blob envelope.
// Blobs with an unknown version are treated as absent so the store falls
// back to its documented defaults instead of misreading old layouts.
const SchemaVersion = 1

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
}

// decode unwraps a persisted envelope into v. The boolean reports whether
// the blob was usable; corrupt JSON or a version mismatch yields false, not
// an error, since malformed persisted state is never fatal.
func decode(raw []byte, v any) bool {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false
	}
	if env.SchemaVersion != SchemaVersion || len(env.Data) == 0 {
		return false
	}
	return json.Unmarshal(env.Data, v) == nil
}
