package order

import "github.com/shopspring/decimal"

type Status string

const (
	StatusAccepted       Status = "Accepted"
	StatusGathering      Status = "Gathering"
	StatusReadyForPickup Status = "ReadyForPickup"
	StatusIssued         Status = "Issued"
)

var Statuses = []Status{StatusAccepted, StatusGathering, StatusReadyForPickup, StatusIssued}

func (s Status) Valid() bool {
	switch s {
	case StatusAccepted, StatusGathering, StatusReadyForPickup, StatusIssued:
		return true
	}
	return false
}

// Label is the human-readable form shown in listings and reports.
func (s Status) Label() string {
	switch s {
	case StatusAccepted:
		return "Order accepted"
	case StatusGathering:
		return "Gathering order"
	case StatusReadyForPickup:
		return "Ready for pickup"
	case StatusIssued:
		return "Issued"
	default:
		return string(s)
	}
}

type Order struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	Quantity  int64  `db:"quantity" json:"quantity"`
	Status    Status `db:"status" json:"status"`
}

// Line is an order joined with its user and product for display.
type Line struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	UserLogin   string `db:"user_login" json:"user_login"`
	ProductID   int64  `db:"product_id" json:"product_id"`
	ProductName string `db:"product_name" json:"product_name"`
	Quantity    int64  `db:"quantity" json:"quantity"`
	Status      Status `db:"status" json:"status"`
	UnitPrice   string `db:"unit_price" json:"unit_price"`
	Total       string `db:"-" json:"total"`
}

// Amount is quantity × unit price; an unparseable price counts as zero.
func (l Line) Amount() decimal.Decimal {
	price, err := decimal.NewFromString(l.UnitPrice)
	if err != nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(l.Quantity))
}

// CancelPreview describes what confirming a cancellation will do.
type CancelPreview struct {
	OrderID     int64  `db:"order_id" json:"order_id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	ProductID   int64  `db:"product_id" json:"product_id"`
	ProductName string `db:"product_name" json:"product_name"`
	Quantity    int64  `db:"quantity" json:"quantity"`
	OnHand      int64  `db:"on_hand" json:"on_hand"`
	OnHandAfter int64  `db:"-" json:"on_hand_after"`
}

// Customer is a user that has at least one order.
type Customer struct {
	UserID int64  `db:"user_id" json:"user_id"`
	Login  string `db:"login" json:"login"`
}
