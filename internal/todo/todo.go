package todo

import "bookinventory/internal/entity"

// Todo is a free-form task. None of its fields are validated.
type Todo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *entity.Date `json:"dueDate"`
	Completed   bool         `json:"completed"`
}
