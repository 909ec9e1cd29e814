package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLookup(t *testing.T) {
	rec := Record{
		"_id":      "66f0a1",
		"foodname": "Masala Dosa",
		"price":    float64(120),
		"skills":   []any{"Go", "SQL"},
		"userId":   map[string]any{"username": "ravi", "email": "ravi@example.com"},
		"gone":     nil,
	}

	tests := []struct {
		name  string
		field string
		want  string
		ok    bool
	}{
		{"string field", "foodname", "Masala Dosa", true},
		{"number renders as string", "price", "120", true},
		{"list joins", "skills", "Go, SQL", true},
		{"nested lookup", "userId.username", "ravi", true},
		{"absent field", "missing", "", false},
		{"null field", "gone", "", false},
		{"nested through scalar", "foodname.x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rec.Lookup(tt.field)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "66f0a1", rec.ID())
}

func TestRecordBool(t *testing.T) {
	rec := Record{"availability": false}

	assert.False(t, rec.Bool("availability", true))
	assert.True(t, rec.Bool("missing", true))
	assert.False(t, rec.Bool("missing", false))
}

func TestRecordStrings(t *testing.T) {
	rec := Record{
		"image":  []any{"uploads/a.jpg", "uploads/b.jpg"},
		"logo":   "uploads/logo.png",
		"number": float64(3),
	}

	assert.Equal(t, []string{"uploads/a.jpg", "uploads/b.jpg"}, rec.Strings("image"))
	assert.Equal(t, []string{"uploads/logo.png"}, rec.Strings("logo"))
	assert.Nil(t, rec.Strings("number"))
	assert.Nil(t, rec.Strings("missing"))
}

func TestRoomDescriptorValidation(t *testing.T) {
	d := Room()

	assert.Error(t, d.Validate(map[string]string{"contactNo": "123456789"}))
	assert.Error(t, d.Validate(map[string]string{"contactNo": "12345678901"}))
	assert.Error(t, d.Validate(map[string]string{"contactNo": "98765abc10"}))
	assert.NoError(t, d.Validate(map[string]string{"contactNo": "9876543210"}))
}

func TestDescriptorPredicates(t *testing.T) {
	room := Room()
	assert.True(t, room.IsBool("availability"))
	assert.False(t, room.IsBool("price"))
	assert.True(t, room.IsRequired("contactNo"))

	queries := Queries()
	assert.True(t, queries.IsDate("submittedAt"))
	assert.False(t, queries.IsDate("name"))
	assert.True(t, queries.ReadOnly)
}
