package pricing

import "github.com/shopspring/decimal"

// Collection is the ordered list of line items owned by one estimate. Order
// matters for display only; the total is order-independent.
type Collection []LineItem

// Total sums the current subtotals.
func (c Collection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal)
	}
	return total.Round(2)
}

// IndexOf returns the position of the item with the given id, or -1.
func (c Collection) IndexOf(id string) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// RemoveAt drops the item at the given display position. Surviving items keep
// their ids; only their positions shift. Out-of-range indexes are a no-op.
func (c Collection) RemoveAt(index int) Collection {
	if index < 0 || index >= len(c) {
		return c
	}
	next := make(Collection, 0, len(c)-1)
	next = append(next, c[:index]...)
	next = append(next, c[index+1:]...)
	return next
}

// Append adds an item at the end of the list.
func (c Collection) Append(item LineItem) Collection {
	next := make(Collection, len(c), len(c)+1)
	copy(next, c)
	return append(next, item)
}
