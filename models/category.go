package models

import "time"

type Category struct {
	ID        int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	MenuCount int       `json:"menu_count" bson:"menu_count,omitempty" db:"menu_count"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// CategoryWithMenus is the public catalogue shape: a category and its
// published menus only.
type CategoryWithMenus struct {
	ID    int64   `json:"id" bson:"_id"`
	Name  string  `json:"name" bson:"name"`
	Menus []*Menu `json:"menus" bson:"menus"`
}
