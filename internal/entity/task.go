package entity

import (
	"github.com/uptrace/bun"
)

// Task statuses.
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskDone       = "DONE"
)

type Task struct {
	bun.BaseModel `bun:"table:tasks"`

	BasicEntity
	UserID      int     `json:"user_id" bun:"user_id"`
	Title       *string `json:"title" bun:"title"`
	Description *string `json:"description" bun:"description"`
	Status      string  `json:"status" bun:"status"`
	DueDate     *string `json:"due_date" bun:"due_date"`
}
