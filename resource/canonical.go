package resource

import (
	"encoding/json"

	"dogctl/faults"
)

// CanonicalJSON renders a value as its normalized, two-space-indented JSON
// serialization. Keys sort recursively, so two semantically equal documents
// produce byte-identical text.
func CanonicalJSON(value Value) (string, error) {
	normalized, err := Normalize(value)
	if err != nil {
		return "", err
	}

	encoded, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return "", faults.NewTypedError(faults.InternalError, "failed to serialize canonical JSON", err)
	}
	return string(encoded), nil
}
