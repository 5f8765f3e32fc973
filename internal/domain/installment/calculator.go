// Package installment computes flat-rate (add-on interest) financing plans
// for a product price. Interest is charged once on the full loan amount for
// the whole term rather than on a declining balance, which is how the
// storefront advertises its installment offers.
package installment

import (
	"errors"
	"math"
)

// DefaultMonthlyRate is the advertised flat monthly interest rate (1.8%).
// It is business policy, so callers can override it per quote.
const DefaultMonthlyRate = 0.018

// Eligibility band for the installment offer, in whole VND. The band is
// enforced by callers; the arithmetic itself works for any positive price.
const (
	MinEligiblePrice = 4_000_000
	MaxEligiblePrice = 50_000_000
)

// Terms are the loan durations offered, in months.
var Terms = []int{3, 6, 9, 12}

var ErrInvalidPrice = errors.New("product price must be positive")

// Plan is the payment schedule for one loan term.
type Plan struct {
	Months         int `json:"months"`
	MonthlyPayment int `json:"monthly_payment"`
	TotalPayable   int `json:"total_payable"`
	InterestCost   int `json:"interest_cost"`
}

// Quote is the full installment breakdown for one price and down payment.
type Quote struct {
	ProductPrice  int    `json:"product_price"`
	PrepayPercent int    `json:"prepay_percent"`
	PrepayAmount  int    `json:"prepay_amount"`
	LoanAmount    int    `json:"loan_amount"`
	Plans         []Plan `json:"plans"`
}

type options struct {
	monthlyRate float64
}

type Option func(*options)

// WithMonthlyRate overrides the flat monthly interest rate.
func WithMonthlyRate(rate float64) Option {
	return func(o *options) { o.monthlyRate = rate }
}

// Eligible reports whether the installment offer is shown for a price.
func Eligible(price int) bool {
	return price >= MinEligiblePrice && price <= MaxEligiblePrice
}

// Compute builds an installment quote for the given price and down-payment
// percentage. prepayPercent is not restricted to the UI's discrete choices;
// any integer the caller supplies is computed as-is. A non-positive price is
// rejected rather than silently producing degenerate figures.
func Compute(price, prepayPercent int, opts ...Option) (*Quote, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	o := options{monthlyRate: DefaultMonthlyRate}
	for _, opt := range opts {
		opt(&o)
	}

	prepay := roundHalfUp(float64(price) * float64(prepayPercent) / 100)
	loan := price - prepay

	plans := make([]Plan, 0, len(Terms))
	for _, months := range Terms {
		interest := roundHalfUp(float64(loan) * o.monthlyRate * float64(months))
		total := loan + interest
		monthly := roundHalfUp(float64(total) / float64(months))

		plans = append(plans, Plan{
			Months:         months,
			MonthlyPayment: monthly,
			TotalPayable:   total,
			// Rounded difference, so total == loan + interest holds exactly.
			InterestCost: total - loan,
		})
	}

	return &Quote{
		ProductPrice:  price,
		PrepayPercent: prepayPercent,
		PrepayAmount:  prepay,
		LoanAmount:    loan,
		Plans:         plans,
	}, nil
}

// roundHalfUp rounds to the nearest whole currency unit, halves away from
// zero, applied consistently to every monetary output.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
