package resource

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"dogctl/faults"
)

type Value = any

// Document is one parsed resource definition. The four kinds share no schema;
// the only keys the tooling itself inspects are the detection signals and "id".
type Document map[string]any

func (d Document) HasID() bool {
	_, found := d["id"]
	return found
}

// ID returns the identifier rendered as a string. Monitor and downtime ids are
// numeric on the wire, dashboard and SLO ids are strings.
func (d Document) ID() (string, bool) {
	raw, found := d["id"]
	if !found {
		return "", false
	}
	return FormatID(raw), true
}

// WithoutID returns a shallow copy with the "id" key removed. Update
// operations take the identifier separately from the body.
func (d Document) WithoutID() Document {
	body := make(Document, len(d))
	for key, value := range d {
		if key == "id" {
			continue
		}
		body[key] = value
	}
	return body
}

func FormatID(raw any) string {
	switch typed := raw.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return strings.Trim(string(encoded), "\"")
	}
}

func LoadDocument(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, faults.NewTypedError(faults.ValidationError, "File not found: "+path, nil)
		}
		return nil, faults.NewTypedError(faults.ValidationError, "failed to read "+path, err)
	}

	return ParseDocument(path, content)
}

func ParseDocument(path string, content []byte) (Document, error) {
	var decoded any
	if err := json.Unmarshal(content, &decoded); err != nil {
		return nil, faults.NewTypedError(faults.ValidationError, "Invalid JSON in "+path, err)
	}

	document, isObject := decoded.(map[string]any)
	if !isObject {
		return nil, faults.NewTypedError(faults.ValidationError, "resource document in "+path+" must be a JSON object", nil)
	}
	return Document(document), nil
}
