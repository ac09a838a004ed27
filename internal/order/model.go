package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// transitions lists the statuses reachable from each status. Terminal statuses map to nothing.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusAccepted, StatusCancelled},
	StatusAccepted:       {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// AllStatuses is every known status in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending, StatusAccepted, StatusPreparing,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether next is in the allowed-next set of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s OrderStatus) AllowedNext() []OrderStatus {
	return append([]OrderStatus(nil), transitions[s]...)
}

// LineItem is a snapshot of a menu item at order time.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LineItems is stored as a JSONB column.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(li)
}

func (li *LineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*li = LineItems{}
		return nil
	case []byte:
		return json.Unmarshal(v, li)
	case string:
		return json.Unmarshal([]byte(v), li)
	}
	return errors.New("order: unsupported items column type")
}

// Subtotal is the sum of price times quantity.
func (li LineItems) Subtotal() float64 {
	var sum float64
	for _, it := range li {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Requester is the ordering user as seen by the restaurant.
type Requester struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Contact string    `json:"contact"`
	Address string    `json:"address"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"userId"`
	RestaurantID    uuid.UUID   `json:"restaurantId"`
	Items           LineItems   `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	DeliveryAddress string      `json:"deliveryAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`

	RestaurantName string     `json:"restaurantName,omitempty"`
	Requester      *Requester `json:"user,omitempty"`
}

type CreateOrderInput struct {
	RestaurantID    string     `json:"restaurantId"`
	Items           []LineItem `json:"items"`
	Total           *float64   `json:"total"`
	DeliveryAddress string     `json:"deliveryAddress"`
}

// Actor is the authenticated caller reading an order.
type Actor struct {
	ID   string
	Role string
}
