package datadog

import (
	"context"
	"net/http"

	"dogctl/resource"
)

type UsersAPI struct {
	client *Client
}

func (a UsersAPI) List(ctx context.Context) ([]resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v2/users"})
	if err != nil {
		return nil, err
	}
	return documentListField(value, "data")
}

func (a UsersAPI) Get(ctx context.Context, userID string) (resource.Document, error) {
	value, err := a.client.do(ctx, requestSpec{method: http.MethodGet, path: "/api/v2/users/" + userID})
	if err != nil {
		return nil, err
	}

	envelope, err := asDocument(value)
	if err != nil {
		return nil, err
	}
	if data, isObject := envelope["data"].(map[string]any); isObject {
		return resource.Document(data), nil
	}
	return envelope, nil
}

func (a UsersAPI) Invite(ctx context.Context, email string, role string) (resource.Document, error) {
	attributes := resource.Document{"email": email}
	if role != "" {
		attributes["title"] = role
	}

	body := resource.Document{
		"data": []any{resource.Document{
			"type": "user_invitations",
			"relationships": resource.Document{
				"user": resource.Document{
					"data": resource.Document{"type": "users", "attributes": attributes},
				},
			},
		}},
	}

	value, err := a.client.do(ctx, requestSpec{method: http.MethodPost, path: "/api/v2/user_invitations", body: body})
	if err != nil {
		return nil, err
	}
	return asDocument(value)
}

func (a UsersAPI) Disable(ctx context.Context, userID string) error {
	_, err := a.client.do(ctx, requestSpec{method: http.MethodDelete, path: "/api/v2/users/" + userID})
	return err
}
