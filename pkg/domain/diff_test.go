package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	base := &State{
		SessionID: "sess-1",
		Schema:    "signup",
		Values:    map[string]string{"name": "Alice"},
		Pending:   "gender",
		Status:    StatusActive,
		History:   []string{"name"},
	}

	t.Run("Initial Load (Old is Nil)", func(t *testing.T) {
		diff := Diff(nil, base)
		require.NotNil(t, diff)
		assert.Equal(t, "gender", *diff.Pending)
		assert.Equal(t, StatusActive, *diff.Status)
		assert.Equal(t, "Alice", *diff.Values["name"])
		assert.Equal(t, []string{"name"}, diff.Applied)
	})

	t.Run("No Changes", func(t *testing.T) {
		assert.Nil(t, Diff(base, base.Snapshot()))
	})

	t.Run("Value Applied", func(t *testing.T) {
		next := base.Snapshot()
		next.Values["gender"] = "F"
		next.Pending = "kind.size"
		next.History = append(next.History, "gender")

		diff := Diff(base, next)
		require.NotNil(t, diff)
		assert.Equal(t, "kind.size", *diff.Pending)
		assert.Nil(t, diff.Status)
		assert.Len(t, diff.Values, 1)
		assert.Equal(t, "F", *diff.Values["gender"])
		assert.Equal(t, []string{"gender"}, diff.Applied)
	})

	t.Run("Value Removed And Completed", func(t *testing.T) {
		next := base.Snapshot()
		delete(next.Values, "name")
		next.Pending = ""
		next.Status = StatusComplete

		diff := Diff(base, next)
		require.NotNil(t, diff)
		assert.Equal(t, "", *diff.Pending)
		assert.Equal(t, StatusComplete, *diff.Status)
		v, ok := diff.Values["name"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	old := NewState("s", "signup")
	next := old.Snapshot()
	next.Values["name"] = "Bob"

	data, err := json.Marshal(Diff(old, next))
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"s","values":{"name":"Bob"}}`, string(data))
}
