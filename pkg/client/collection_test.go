package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newWidgets(c *Client) *Collection[widget] {
	return NewCollection(c, "/v1/widgets", func(w widget) string { return w.ID })
}

func TestCollection_ListEnvelope(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200,
		`{"results":[{"id":"1","name":"a"},{"id":"2","name":"b"}],"count":7,"next":"/v1/widgets?offset=2","previous":null}`))
	widgets := newWidgets(c)

	items, err := widgets.List(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, items, 2)
	assert.Equal(t, int64(7), widgets.Cache().Total())
	assert.True(t, widgets.Cache().Loaded())
}

func TestCollection_ListBareArray(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200, `[{"id":"1","name":"a"},{"id":"2","name":"b"},{"id":"3","name":"c"}]`))
	widgets := newWidgets(c)

	items, err := widgets.List(context.Background(), nil)
	require.NoError(t, err)

	// A bare array normalizes to the same shape: count = length.
	assert.Len(t, items, 3)
	assert.Equal(t, int64(3), widgets.Cache().Total())
}

func TestCollection_GetDoesNotTouchCache(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200, `{"id":"9","name":"solo"}`))
	widgets := newWidgets(c)
	widgets.Cache().Set([]widget{{ID: "1"}}, 1)

	item, err := widgets.Get(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "solo", item.Name)

	assert.Equal(t, []widget{{ID: "1"}}, widgets.Cache().Items())
}

func TestCollection_CreatePrependsServerVersion(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body widget
		_ = json.NewDecoder(r.Body).Decode(&body)
		// The server enriches the record; the cache must hold its version.
		body.ID = "new"
		body.Name = body.Name + " (normalized)"
		_ = json.NewEncoder(w).Encode(body)
	}))
	widgets := newWidgets(c)
	widgets.Cache().Set([]widget{{ID: "old"}}, 1)

	item, err := widgets.Create(context.Background(), widget{Name: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, "fresh (normalized)", item.Name)

	items := widgets.Cache().Items()
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, int64(2), widgets.Cache().Total())
}

func TestCollection_UpdateReplacesInPlace(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200, `{"id":"2","name":"renamed"}`))
	widgets := newWidgets(c)
	widgets.Cache().Set([]widget{{ID: "1"}, {ID: "2", Name: "old"}, {ID: "3"}}, 3)

	_, err := widgets.Update(context.Background(), "2", widget{Name: "renamed"})
	require.NoError(t, err)

	items := widgets.Cache().Items()
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "renamed", items[1].Name)
}

func TestCollection_DeleteRemoves(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	widgets := newWidgets(c)
	widgets.Cache().Set([]widget{{ID: "1"}, {ID: "2"}}, 2)

	require.NoError(t, widgets.Delete(context.Background(), "1"))

	items := widgets.Cache().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
	assert.Equal(t, int64(1), widgets.Cache().Total())
}

func TestCollection_ActionReplaces(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id":"1","name":"revoked"}`))
	}))
	widgets := newWidgets(c)
	widgets.Cache().Set([]widget{{ID: "1", Name: "active"}}, 1)

	_, err := widgets.Action(context.Background(), "1", "revoke", nil)
	require.NoError(t, err)

	assert.Equal(t, "/v1/widgets/1/revoke", gotPath)
	assert.Equal(t, "revoked", widgets.Cache().Items()[0].Name)
}

func TestCollection_FailedMutationLeavesCacheUntouched(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(422, `{"message":"no"}`))
	widgets := newWidgets(c)
	before := []widget{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	widgets.Cache().Set(before, 2)

	_, err := widgets.Create(context.Background(), widget{Name: "x"})
	require.Error(t, err)
	_, err = widgets.Update(context.Background(), "1", widget{Name: "x"})
	require.Error(t, err)
	err = widgets.Delete(context.Background(), "1")
	require.Error(t, err)
	_, err = widgets.Action(context.Background(), "1", "expire", nil)
	require.Error(t, err)

	assert.Equal(t, before, widgets.Cache().Items())
	assert.Equal(t, int64(2), widgets.Cache().Total())
}
