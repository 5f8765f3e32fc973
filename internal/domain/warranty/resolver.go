// Package warranty derives per-item warranty status for an order. Coverage
// is anchored to the delivery date, not the purchase date: a laptop that sat
// in transit for two weeks is still covered for the full period after the
// customer receives it.
package warranty

import "time"

// Status classifies an item's warranty state at lookup time.
type Status string

const (
	StatusActive          Status = "active"
	StatusExpired         Status = "expired"
	StatusPendingDelivery Status = "pending_delivery"
	StatusUnknown         Status = "unknown"
)

// ItemInfo describes one purchased line item as stored on the order.
type ItemInfo struct {
	ProductID string
	Name      string
	ImageURL  string
	Quantity  int
}

// OrderInfo is the slice of an order the resolver needs. DeliveredAt is nil
// until the order has actually been marked delivered; the resolver trusts
// only this field, not the status string, so malformed records degrade to
// pending rather than producing bogus expiry dates.
type OrderInfo struct {
	OrderID     string
	Status      string
	PurchasedAt time.Time
	DeliveredAt *time.Time
	Items       []ItemInfo
}

// MonthsLookup resolves the configured warranty months for a product.
// ok reports whether the product could be resolved at all.
type MonthsLookup func(productID string) (months int, ok bool)

// Item is the derived warranty view of one line item. It is computed fresh
// on every lookup and never persisted.
type Item struct {
	ProductID      string     `json:"product_id"`
	Name           string     `json:"name"`
	ImageURL       string     `json:"image_url,omitempty"`
	Quantity       int        `json:"quantity"`
	WarrantyMonths int        `json:"warranty_months"`
	Status         Status     `json:"warranty_status"`
	ExpiresAt      *time.Time `json:"expiration_date,omitempty"`
	RemainingDays  int        `json:"remaining_days"`
}

// Resolve computes the warranty state of every item on the order as of now.
// It is total: lookup failures yield StatusUnknown for the affected item and
// the rest of the order still resolves. now is injected by the caller so
// boundary conditions are testable.
func Resolve(order OrderInfo, months MonthsLookup, now time.Time) []Item {
	items := make([]Item, 0, len(order.Items))

	for _, li := range order.Items {
		item := Item{
			ProductID: li.ProductID,
			Name:      li.Name,
			ImageURL:  li.ImageURL,
			Quantity:  li.Quantity,
		}

		m, ok := 0, false
		if months != nil {
			m, ok = months(li.ProductID)
		}
		if ok && m >= 0 {
			item.WarrantyMonths = m
		}

		if order.DeliveredAt == nil {
			// Coverage has not started yet, whatever the status field says.
			item.Status = StatusPendingDelivery
			items = append(items, item)
			continue
		}

		if !ok || m < 0 {
			item.Status = StatusUnknown
			items = append(items, item)
			continue
		}

		expires := AddMonths(*order.DeliveredAt, m)
		item.ExpiresAt = &expires

		if now.Before(expires) {
			item.Status = StatusActive
			item.RemainingDays = daysUntil(now, expires)
		} else {
			item.Status = StatusExpired
		}

		items = append(items, item)
	}

	return items
}

// AddMonths advances t by the given number of calendar months, clamping the
// day of month to the last valid day of the target month (Jan 31 + 1 month
// is Feb 28, or Feb 29 in a leap year). time.AddDate would normalize the
// overflow into the following month instead.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// daysUntil returns the remaining coverage in days, rounded up so that any
// partial day still counts as a day of coverage.
func daysUntil(now, expires time.Time) int {
	diff := expires.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
