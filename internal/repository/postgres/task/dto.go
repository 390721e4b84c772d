package task

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	UserID *int
	Status *string
}

type GetListResponse struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	FullName    *string `json:"full_name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
}

type CreateRequest struct {
	UserID      *int    `json:"user_id" form:"user_id"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	DueDate     *string `json:"due_date" form:"due_date"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:tasks"`

	ID          int       `json:"id" bun:"-"`
	UserID      int       `json:"user_id" bun:"user_id"`
	Title       *string   `json:"title" bun:"title"`
	Description *string   `json:"description" bun:"description"`
	Status      string    `json:"status" bun:"status"`
	DueDate     *string   `json:"due_date" bun:"due_date"`
	CreatedAt   time.Time `json:"-" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID          int     `json:"id" form:"id"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Status      *string `json:"status" form:"status"`
	DueDate     *string `json:"due_date" form:"due_date"`
}
