package entity

import (
	"github.com/uptrace/bun"
)

type Holiday struct {
	bun.BaseModel `bun:"table:holidays"`

	BasicEntity
	Name *string `json:"name" bun:"name"`
	Day  string  `json:"day" bun:"day"`
}
