package coupon

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidItemQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidItemPrice    = errors.New("item price cannot be negative")
)

// UserContext carries the purchasing user's attributes as asserted by the
// caller. Optional fields are nil when the caller did not supply them.
type UserContext struct {
	UserID        string
	Tier          *string
	Country       *string
	LifetimeSpend decimal.Decimal
	OrdersPlaced  int
}

type CartItem struct {
	ProductID string
	Category  string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (i CartItem) Validate() error {
	if i.Quantity < 1 {
		return ErrInvalidItemQuantity
	}
	if i.UnitPrice.IsNegative() {
		return ErrInvalidItemPrice
	}
	return nil
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Items []CartItem
}

func (c Cart) Validate() error {
	for _, item := range c.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Value is the pre-discount cart total: sum of unitPrice x quantity.
func (c Cart) Value() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount is the total unit count, not the number of line items.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Categories returns the distinct item categories, case-sensitive.
func (c Cart) Categories() map[string]struct{} {
	categories := make(map[string]struct{}, len(c.Items))
	for _, item := range c.Items {
		categories[item.Category] = struct{}{}
	}
	return categories
}
