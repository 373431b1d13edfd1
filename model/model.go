// Package model holds the task and project records exchanged with the
// task API. The types carry no behavior beyond JSON encoding.
package model

// Due describes when a task is due.
type Due struct {
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
	String      string `json:"string"`
}

// Task is a single to-do item.
type Task struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	ProjectName string   `json:"project_name"`
	ProjectID   string   `json:"project_id"`
	SectionID   string   `json:"section_id"`
	SectionName string   `json:"section_name"`
	Due         *Due     `json:"due,omitempty"`
	Description string   `json:"description"`
	Priority    int      `json:"priority"`
	CreatedAt   string   `json:"created_at"`
	IsCompleted bool     `json:"is_completed"`
	Labels      []string `json:"labels"`
	URL         string   `json:"url"`
}

// Project groups tasks.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// APIResponse wraps an API result: Data on success, Error otherwise.
type APIResponse[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the response carries no error.
func (r APIResponse[T]) OK() bool {
	return r.Error == ""
}
