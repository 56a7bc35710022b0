package datadog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"dogctl/faults"
	"dogctl/resource"
)

func decodeJSONResponse(body []byte) (resource.Value, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return nil, faults.NewTypedError(faults.TransportError, "remote response is not valid JSON", err)
	}
	return decoded, nil
}

func classifyStatusError(statusCode int, body []byte) error {
	message := fmt.Sprintf("remote request failed with status %d: %s", statusCode, summarizeBody(body))

	switch statusCode {
	case http.StatusUnauthorized:
		return faults.NewTypedError(faults.AuthError, "Authentication failed", nil).
			WithHint("check DD_API_KEY and DD_APP_KEY or run dogctl config init")
	case http.StatusForbidden:
		return faults.NewTypedError(faults.AuthError, "Permission denied", nil).
			WithHint("check API key permissions")
	case http.StatusNotFound:
		return faults.NewTypedError(faults.NotFoundError, message, nil).
			WithHint("verify the resource ID")
	case http.StatusTooManyRequests:
		return faults.NewTypedError(faults.RateLimitError, message, nil).
			WithHint("try again later or reduce request frequency")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return faults.NewTypedError(faults.ValidationError, message, nil)
	}

	if statusCode >= http.StatusInternalServerError {
		return faults.NewTypedError(faults.ServerError, message, nil).
			WithHint("Datadog service issue, try again later")
	}
	return faults.NewTypedError(faults.TransportError, message, nil)
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "<empty>"
	}
	if len(trimmed) > 512 {
		return trimmed[:512] + "..."
	}
	return trimmed
}

func asDocument(value resource.Value) (resource.Document, error) {
	object, isObject := value.(map[string]any)
	if !isObject {
		return nil, faults.NewTypedError(faults.TransportError, "remote response is not a JSON object", nil)
	}
	return resource.Document(object), nil
}

func asDocumentList(value resource.Value) ([]resource.Document, error) {
	items, isList := value.([]any)
	if !isList {
		return nil, faults.NewTypedError(faults.TransportError, "remote response is not a JSON array", nil)
	}

	documents := make([]resource.Document, 0, len(items))
	for _, item := range items {
		object, isObject := item.(map[string]any)
		if !isObject {
			return nil, faults.NewTypedError(faults.TransportError, "remote response array holds a non-object entry", nil)
		}
		documents = append(documents, resource.Document(object))
	}
	return documents, nil
}

func documentListField(value resource.Value, field string) ([]resource.Document, error) {
	object, err := asDocument(value)
	if err != nil {
		return nil, err
	}
	return asDocumentList(object[field])
}
