package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Collection provides typed CRUD over one API resource, keeping its list
// cache reconciled with every successful mutation. A failed request leaves
// the cache untouched.
type Collection[T any] struct {
	client *Client
	path   string
	cache  *ListCache[T]
}

// NewCollection creates a collection for a resource path like
// "/v1/campaigns".
func NewCollection[T any](client *Client, path string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		client: client,
		path:   path,
		cache:  NewListCache(idOf),
	}
}

// Cache exposes the list cache for rendering.
func (col *Collection[T]) Cache() *ListCache[T] {
	return col.cache
}

// listEnvelope is the paginated list shape.
type listEnvelope[T any] struct {
	Results []T   `json:"results"`
	Count   int64 `json:"count"`
}

// List fetches the resource list and loads it into the cache. Both the
// paginated envelope and a bare JSON array are accepted; results are
// normalized here once so nothing downstream branches on response shape.
func (col *Collection[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	resp, err := col.client.do(ctx, http.MethodGet, col.path, nil, query)
	if err != nil {
		return nil, err
	}

	items, total, err := decodeList[T](resp.Raw)
	if err != nil {
		return nil, err
	}

	col.cache.Set(items, total)
	return items, nil
}

// Get fetches one record by ID. The cache is not touched: detail views
// must not reorder lists.
func (col *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	resp, err := col.client.do(ctx, http.MethodGet, col.path+"/"+id, nil, nil)
	if err != nil {
		return item, err
	}
	if err := resp.Decode(&item); err != nil {
		return item, err
	}
	return item, nil
}

// Create posts a new record and prepends the server's version of it to
// the cached list.
func (col *Collection[T]) Create(ctx context.Context, body any) (T, error) {
	var item T
	resp, err := col.client.do(ctx, http.MethodPost, col.path, body, nil)
	if err != nil {
		return item, err
	}
	if err := resp.Decode(&item); err != nil {
		return item, err
	}
	col.cache.Prepend(item)
	return item, nil
}

// Update replaces a record and swaps it into the cached list in place.
func (col *Collection[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var item T
	resp, err := col.client.do(ctx, http.MethodPut, col.path+"/"+id, body, nil)
	if err != nil {
		return item, err
	}
	if err := resp.Decode(&item); err != nil {
		return item, err
	}
	col.cache.ReplaceByID(item)
	return item, nil
}

// Delete removes a record and drops it from the cached list.
func (col *Collection[T]) Delete(ctx context.Context, id string) error {
	if _, err := col.client.do(ctx, http.MethodDelete, col.path+"/"+id, nil, nil); err != nil {
		return err
	}
	col.cache.RemoveByID(id)
	return nil
}

// Action posts to a record action endpoint (e.g. links/:id/revoke) and
// swaps the returned record into the cached list.
func (col *Collection[T]) Action(ctx context.Context, id, action string, body any) (T, error) {
	var item T
	resp, err := col.client.do(ctx, http.MethodPost, col.path+"/"+id+"/"+action, body, nil)
	if err != nil {
		return item, err
	}
	if err := resp.Decode(&item); err != nil {
		return item, err
	}
	col.cache.ReplaceByID(item)
	return item, nil
}

// decodeList accepts either the {results, count} envelope or a bare array.
func decodeList[T any](raw []byte) ([]T, int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, fmt.Errorf("decode list: %w", err)
		}
		return items, int64(len(items)), nil
	}

	var envelope listEnvelope[T]
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, 0, fmt.Errorf("decode list envelope: %w", err)
	}
	return envelope.Results, envelope.Count, nil
}
