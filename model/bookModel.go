// model/book.go
package model

import "time"

type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type Book struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Author        string    `json:"author,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	Edition       string    `json:"edition,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	CourseCode    string    `json:"courseCode,omitempty"`
	Description   string    `json:"description,omitempty"`
	Condition     Condition `json:"condition"`
	PricePerDay   float64   `json:"pricePerDay"`
	PricePerWeek  *float64  `json:"pricePerWeek,omitempty"`
	PricePerMonth *float64  `json:"pricePerMonth,omitempty"`
	Images        []string  `json:"images"`
	IsAvailable   bool      `json:"isAvailable"`
	Location      string    `json:"location,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Joined at read time, never persisted.
	Owner *User `json:"owner,omitempty"`
}

// CreateBookReq represents the listing form payload
// swagger:model CreateBookReq
type CreateBookReq struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	ISBN          string   `json:"isbn"`
	Edition       string   `json:"edition"`
	Subject       string   `json:"subject"`
	CourseCode    string   `json:"courseCode"`
	Description   string   `json:"description"`
	Condition     string   `json:"condition" validate:"required,oneof=new like_new good fair poor"`
	PricePerDay   float64  `json:"pricePerDay" validate:"required,gte=0"`
	PricePerWeek  *float64 `json:"pricePerWeek" validate:"omitempty,gte=0"`
	PricePerMonth *float64 `json:"pricePerMonth" validate:"omitempty,gte=0"`
	Location      string   `json:"location"`
}
