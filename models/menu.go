package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"
)

const (
	MenuStatusDraft     = "DRAFT"
	MenuStatusPublished = "PUBLISHED"
)

// DescriptionLines is an ordered list of description lines, stored as a
// jsonb column in Postgres and a plain array in Mongo.
type DescriptionLines []string

func (d DescriptionLines) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DescriptionLines) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(d))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(d))
	}
	return errors.New("unsupported type for description lines")
}

type Menu struct {
	ID              int64            `json:"id" bson:"_id,omitempty" db:"id"`
	Name            string           `json:"name" bson:"name" db:"name"`
	Description     DescriptionLines `json:"description" bson:"description" db:"description"`
	Price           float64          `json:"price" bson:"price" db:"price"`
	DiscountedPrice *float64         `json:"discounted_price,omitempty" bson:"discounted_price,omitempty" db:"discounted_price"`
	DiscountPercent *int             `json:"discount_percent,omitempty" bson:"discount_percent,omitempty" db:"discount_percent"`
	Status          string           `json:"status" bson:"status" db:"status"`
	ImageURL        *string          `json:"image_url,omitempty" bson:"image_url,omitempty" db:"image_url"`
	ImageKey        *string          `json:"image_key,omitempty" bson:"image_key,omitempty" db:"image_key"`
	ImageAlt        *string          `json:"image_alt,omitempty" bson:"image_alt,omitempty" db:"image_alt"`
	CategoryID      int64            `json:"category_id" bson:"category_id" db:"category_id"`
	CategoryName    string           `json:"category_name,omitempty" bson:"category_name,omitempty" db:"category_name"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

func ValidMenuStatus(s string) bool {
	return s == MenuStatusDraft || s == MenuStatusPublished
}

// ComputeDiscountPercent derives the rounded discount percentage from the
// absolute prices. Returns nil when there is no usable discount (missing
// discounted price, zero price, or discounted price not below price).
func ComputeDiscountPercent(price float64, discounted *float64) *int {
	if discounted == nil || price <= 0 {
		return nil
	}
	if *discounted < 0 || *discounted >= price {
		return nil
	}
	p := int(math.Round((1 - *discounted/price) * 100))
	return &p
}

// ApplyDiscount recomputes the derived percent from the current price
// fields, overriding whatever the client supplied.
func (m *Menu) ApplyDiscount() {
	m.DiscountPercent = ComputeDiscountPercent(m.Price, m.DiscountedPrice)
}
