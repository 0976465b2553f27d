// model/rental.go
package model

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestActive    RequestStatus = "active"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// Terminal reports whether no further transition can leave the status.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestRejected, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used for rental ranges.
const DateLayout = "2006-01-02"

type RentalRequest struct {
	ID          string        `json:"id"`
	BookID      string        `json:"bookId"`
	RequesterID string        `json:"requesterId"`
	OwnerID     string        `json:"ownerId"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	TotalPrice  float64       `json:"totalPrice"`
	Status      RequestStatus `json:"status"`
	Message     string        `json:"message,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	Book      *Book `json:"book,omitempty"`
	Requester *User `json:"requester,omitempty"`
	Owner     *User `json:"owner,omitempty"`
}

// CreateRequestReq represents the rent-request payload
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	BookID     string  `json:"bookId" validate:"required"`
	StartDate  string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	TotalPrice float64 `json:"totalPrice" validate:"gte=0"`
	Message    string  `json:"message"`
}
