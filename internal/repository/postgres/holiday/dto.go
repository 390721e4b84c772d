package holiday

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit *int
	Page  *int
	Year  *int
}

type GetListResponse struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
	Day  string  `json:"day"`
}

type CreateRequest struct {
	Name *string `json:"name" form:"name"`
	Day  *string `json:"day" form:"day"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:holidays"`

	ID        int       `json:"id" bun:"-"`
	Name      *string   `json:"name" bun:"name"`
	Day       string    `json:"day" bun:"day"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID   int     `json:"id" form:"id"`
	Name *string `json:"name" form:"name"`
	Day  *string `json:"day" form:"day"`
}
