package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hirebase/internal/core/entity"
)

type mockRecord struct {
	entity.Record
	Name     string `db:"name" json:"name"`
	Status   string `db:"status" json:"status"`
	Loaded   string `db:"-" json:"loaded"`
	Untagged string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "name", "status"}, cols)
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	cols := ExtractDBColumns[*mockRecord]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "name")
}

func TestStructToMap(t *testing.T) {
	rec := mockRecord{
		Record:   entity.NewRecord(),
		Name:     "test",
		Status:   "active",
		Loaded:   "skip me",
		Untagged: "skip me too",
	}

	m := StructToMap(rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, rec.Version, m["version"])
	assert.Equal(t, "test", m["name"])
	assert.Equal(t, "active", m["status"])
	assert.NotContains(t, m, "-")
	assert.NotContains(t, m, "Loaded")
	assert.NotContains(t, m, "Untagged")
}

func TestStructToMap_Pointer(t *testing.T) {
	rec := &mockRecord{Record: entity.NewRecord(), Name: "ptr"}

	m := StructToMap(rec)

	assert.Equal(t, "ptr", m["name"])
}
