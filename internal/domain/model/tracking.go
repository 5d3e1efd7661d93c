package model

import "time"

// PublicOrderView is the reduced projection returned to unauthenticated tracking requests.
type PublicOrderView struct {
	Reference     string
	Status        OrderStatus
	CreatedAt     time.Time
	City          string
	Country       string
	Items         []PublicItem
	StatusHistory []StatusEntry
}

// PublicItem exposes only what a customer needs to recognise a line.
type PublicItem struct {
	Name     string
	Quantity int
}

// PublicView projects the order without payment, contact or street details.
func (o *Order) PublicView() *PublicOrderView {
	items := make([]PublicItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, PublicItem{Name: item.Name, Quantity: item.Quantity})
	}
	history := make([]StatusEntry, len(o.StatusHistory))
	copy(history, o.StatusHistory)
	return &PublicOrderView{
		Reference:     o.Reference,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		City:          o.Shipping.City,
		Country:       o.Shipping.Country,
		Items:         items,
		StatusHistory: history,
	}
}
