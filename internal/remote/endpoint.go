package remote

import (
	"context"
	"net/http"
	"net/url"
)

// Endpoint is one collection of the API, e.g. "diary". Records are of type
// T and created from payloads of type C.
type Endpoint[T, C any] struct {
	client     *Client
	collection string
}

// NewEndpoint returns the endpoint for collection.
func NewEndpoint[T, C any](client *Client, collection string) *Endpoint[T, C] {
	return &Endpoint[T, C]{client: client, collection: collection}
}

// FetchByOwner returns every record owned by ownerID, in server order.
// GET /{collection}/user/{ownerID}
func (e *Endpoint[T, C]) FetchByOwner(ctx context.Context, ownerID string) ([]T, error) {
	var env envelope[[]T]
	path := "/" + e.collection + "/user/" + url.PathEscape(ownerID)
	if err := e.client.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Create posts payload and returns the record the server stored.
// POST /{collection}
func (e *Endpoint[T, C]) Create(ctx context.Context, payload C) (T, error) {
	var env envelope[T]
	if err := e.client.do(ctx, http.MethodPost, "/"+e.collection, payload, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}
