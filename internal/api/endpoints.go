package api

import (
	"context"
	"net/http"

	"github.com/idilsaglam/todolists/internal/model"
)

// Deleted is the body the backend returns for a delete. The body may be empty,
// in which case the requested id stands.
type Deleted struct {
	ID model.ID `json:"id"`
}

func listPath(id model.ID) string { return "/todo_lists/" + id.String() }
func taskPath(id model.ID) string { return "/tasks/" + id.String() }

// TodoLists fetches every list.
func (c *Client) TodoLists(ctx context.Context) ([]model.ListAttrs, error) {
	var out []model.ListAttrs
	if err := c.Request(ctx, http.MethodGet, "/todo_lists", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TodoList fetches a list with its tasks.
func (c *Client) TodoList(ctx context.Context, id model.ID) (model.ListDetail, error) {
	var out model.ListDetail
	err := c.Request(ctx, http.MethodGet, listPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateTodoList(ctx context.Context, name string) (model.ListAttrs, error) {
	body := map[string]any{"todo_list": map[string]string{"name": name}}
	var out model.ListAttrs
	err := c.Request(ctx, http.MethodPost, "/todo_lists", body, &out)
	return out, err
}

func (c *Client) UpdateTodoList(ctx context.Context, id model.ID, name string) (model.ListAttrs, error) {
	var out model.ListAttrs
	err := c.Request(ctx, http.MethodPut, listPath(id), map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) DeleteTodoList(ctx context.Context, id model.ID) (model.ID, error) {
	var out Deleted
	if err := c.do(ctx, http.MethodDelete, listPath(id), nil, &out, true); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	return out.ID, nil
}

func (c *Client) CreateTask(ctx context.Context, listID model.ID, name string) (model.TaskAttrs, error) {
	body := map[string]any{"task": map[string]any{"name": name, "todo_list_id": listID}}
	var out model.TaskAttrs
	err := c.Request(ctx, http.MethodPost, "/tasks", body, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id model.ID, patch model.TaskPatch) (model.TaskAttrs, error) {
	var out model.TaskAttrs
	err := c.Request(ctx, http.MethodPut, taskPath(id), map[string]any{"task": patch}, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id model.ID) (model.ID, error) {
	var out Deleted
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, &out, true); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	return out.ID, nil
}
