package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)
	assert.Equal(t, "42", id.String())

	for _, bad := range []string{"", "abc", "4.2", "12x"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestTask_MergeDropsUnknownFields(t *testing.T) {
	var a TaskAttrs
	payload := `{"id":5,"name":"Milk","todo_list_id":1,"completed":true,"notes":"2L","created_at":"2024-01-01","owner":"x"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &a))

	task := NewTask(TaskAttrs{ID: 5, Name: "old", Notes: "old notes"})
	task.Merge(a)
	assert.Equal(t, TaskAttrs{ID: 5, Name: "Milk", TodoListID: 1, Completed: true, Notes: "2L"}, task.Attrs())
}

func TestTodoList_MergeOverwrites(t *testing.T) {
	l := NewTodoList(ListAttrs{ID: 1, Name: "Groceries", Active: true})
	l.Merge(ListAttrs{ID: 1, Name: "Food"})
	assert.Equal(t, "Food", l.Name)
	assert.False(t, l.Active)
	assert.Equal(t, ID(1), l.EntityID())
	assert.Same(t, &l.Element, l.Handle())
}

func TestTaskPatch_OmitsNilFields(t *testing.T) {
	done := true
	b, err := json.Marshal(TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":true}`, string(b))
}
