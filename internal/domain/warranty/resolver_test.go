package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedMonths(m int) MonthsLookup {
	return func(productID string) (int, bool) { return m, true }
}

func noMonths(productID string) (int, bool) { return 0, false }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testOrder(delivered *time.Time, items ...ItemInfo) OrderInfo {
	return OrderInfo{
		OrderID:     "order-1",
		Status:      "delivered",
		PurchasedAt: date(2024, time.January, 10),
		DeliveredAt: delivered,
		Items:       items,
	}
}

// ============================================
// Pending delivery
// ============================================

func TestResolve_UndeliveredOrderIsPending(t *testing.T) {
	order := testOrder(nil,
		ItemInfo{ProductID: "p1", Name: "ThinkPad X1", Quantity: 1},
		ItemInfo{ProductID: "p2", Name: "Logitech MX", Quantity: 2},
	)
	// Status field claims delivered, but there is no delivery date. The
	// date wins.
	order.Status = "delivered"

	items := Resolve(order, fixedMonths(12), date(2024, time.June, 1))

	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, StatusPendingDelivery, item.Status)
		assert.Equal(t, 0, item.RemainingDays)
		assert.Nil(t, item.ExpiresAt)
	}
}

func TestResolve_UndeliveredWinsOverUnknown(t *testing.T) {
	order := testOrder(nil, ItemInfo{ProductID: "p1", Quantity: 1})

	items := Resolve(order, noMonths, date(2024, time.June, 1))

	require.Len(t, items, 1)
	assert.Equal(t, StatusPendingDelivery, items[0].Status)
}

// ============================================
// Calendar-month arithmetic
// ============================================

func TestResolve_MonthArithmeticClampsDayOfMonth(t *testing.T) {
	delivered := date(2024, time.January, 31)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	items := Resolve(order, fixedMonths(1), date(2024, time.February, 1))

	require.Len(t, items, 1)
	require.NotNil(t, items[0].ExpiresAt)
	// 2024 is a leap year: Jan 31 + 1 month is Feb 29, not Mar 2.
	assert.Equal(t, date(2024, time.February, 29), *items[0].ExpiresAt)
	assert.Equal(t, StatusActive, items[0].Status)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain month", date(2024, time.March, 15), 1, date(2024, time.April, 15)},
		{"year rollover", date(2024, time.November, 10), 3, date(2025, time.February, 10)},
		{"clamp to feb non-leap", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp to feb leap", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamp to short month", date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{"zero months", date(2024, time.May, 31), 0, date(2024, time.May, 31)},
		{"fifty years", date(2024, time.January, 31), 600, date(2074, time.January, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

// ============================================
// Active / expired boundary
// ============================================

func TestResolve_ExactExpiryMomentIsExpired(t *testing.T) {
	delivered := date(2023, time.March, 10)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	now := date(2024, time.March, 10) // exactly delivered + 12 months

	items := Resolve(order, fixedMonths(12), now)

	require.Len(t, items, 1)
	assert.Equal(t, StatusExpired, items[0].Status)
	assert.Equal(t, 0, items[0].RemainingDays)
}

func TestResolve_ActiveJustBeforeExpiry(t *testing.T) {
	delivered := date(2023, time.March, 10)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	now := date(2024, time.March, 10).Add(-time.Second)

	items := Resolve(order, fixedMonths(12), now)

	require.Len(t, items, 1)
	assert.Equal(t, StatusActive, items[0].Status)
	// A partial day still counts as one remaining day.
	assert.Equal(t, 1, items[0].RemainingDays)
}

func TestResolve_RemainingDaysRoundsUp(t *testing.T) {
	delivered := date(2024, time.January, 1)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	// Exactly 30 whole days before expiry on Feb 1... plus 12h.
	now := date(2024, time.January, 1).Add(12 * time.Hour)

	items := Resolve(order, fixedMonths(1), now)

	require.Len(t, items, 1)
	assert.Equal(t, StatusActive, items[0].Status)
	assert.Equal(t, 31, items[0].RemainingDays) // 30.5 days rounds up
}

func TestResolve_ZeroMonthsExpiresImmediately(t *testing.T) {
	delivered := date(2024, time.May, 1)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	items := Resolve(order, fixedMonths(0), delivered)

	require.Len(t, items, 1)
	assert.Equal(t, StatusExpired, items[0].Status)
	assert.Equal(t, 0, items[0].RemainingDays)
}

func TestResolve_FutureDeliveryDateStaysConsistent(t *testing.T) {
	// Bad data: delivery recorded in the future. No special case, the
	// comparison just runs forward.
	delivered := date(2025, time.January, 1)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	items := Resolve(order, fixedMonths(12), date(2024, time.June, 1))

	require.Len(t, items, 1)
	assert.Equal(t, StatusActive, items[0].Status)
	require.NotNil(t, items[0].ExpiresAt)
	assert.Equal(t, date(2026, time.January, 1), *items[0].ExpiresAt)
}

// ============================================
// Unknown / partial results
// ============================================

func TestResolve_LookupFailureYieldsUnknownOnly(t *testing.T) {
	delivered := date(2024, time.January, 15)
	order := testOrder(&delivered,
		ItemInfo{ProductID: "p1", Quantity: 1},
		ItemInfo{ProductID: "missing", Quantity: 1},
	)

	lookup := func(productID string) (int, bool) {
		if productID == "missing" {
			return 0, false
		}
		return 24, true
	}

	items := Resolve(order, lookup, date(2024, time.June, 1))

	require.Len(t, items, 2)
	assert.Equal(t, StatusActive, items[0].Status)
	assert.Equal(t, 24, items[0].WarrantyMonths)

	assert.Equal(t, StatusUnknown, items[1].Status)
	assert.Equal(t, 0, items[1].RemainingDays)
	assert.Nil(t, items[1].ExpiresAt)
}

func TestResolve_NilLookupYieldsUnknown(t *testing.T) {
	delivered := date(2024, time.January, 15)
	order := testOrder(&delivered, ItemInfo{ProductID: "p1", Quantity: 1})

	items := Resolve(order, nil, date(2024, time.June, 1))

	require.Len(t, items, 1)
	assert.Equal(t, StatusUnknown, items[0].Status)
}

func TestResolve_EmptyOrder(t *testing.T) {
	delivered := date(2024, time.January, 15)
	order := testOrder(&delivered)

	items := Resolve(order, fixedMonths(12), date(2024, time.June, 1))

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// ============================================
// Determinism
// ============================================

func TestResolve_Deterministic(t *testing.T) {
	delivered := date(2024, time.February, 29)
	order := testOrder(&delivered,
		ItemInfo{ProductID: "p1", Name: "Laptop", Quantity: 1},
		ItemInfo{ProductID: "p2", Name: "Mouse", Quantity: 3},
	)
	now := date(2024, time.August, 12).Add(9 * time.Hour)

	first := Resolve(order, fixedMonths(18), now)
	second := Resolve(order, fixedMonths(18), now)

	assert.Equal(t, first, second)
}
