package order

// CartItem is one draft line: a product reference with the unit price
// snapshotted at the moment it was added, so later catalog edits do not
// change what the guest was quoted.
type CartItem struct {
	ProductID   uint64 `json:"product_id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
	Destination string `json:"destination"`
}

// Cart is the uncommitted draft for one table during one terminal session.
// It is never shared across tables: selecting another table starts from an
// empty cart. Items keep insertion order; repeated adds of the same product
// merge into the existing line.
type Cart struct {
	TableID uint64     `json:"table_id"`
	Items   []CartItem `json:"items"`
}

// NewCart returns an empty draft for the given table.
func NewCart(tableID uint64) Cart {
	return Cart{TableID: tableID}
}

// Add puts an item into the draft. If the product is already present its
// quantity is increased instead of appending a second line. Quantities below
// one are treated as one.
func (c *Cart) Add(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if !ValidDestination(item.Destination) {
		item.Destination = DestinationKitchen
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove decrements the quantity for a product and evicts the line when the
// quantity reaches zero. Removing a product that is not in the draft is a
// no-op.
func (c *Cart) Remove(productID uint64) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
			return
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
}

// Clear empties the draft while keeping the table association.
func (c *Cart) Clear() {
	c.Items = nil
}

// Empty reports whether the draft has no items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// SubtotalCents is the sum of price x quantity over all draft lines.
func (c *Cart) SubtotalCents() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.PriceCents * int64(it.Quantity)
	}
	return sum
}
