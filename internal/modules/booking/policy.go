package booking

import (
	"math"
	"time"

	"hotelbooking/internal/domain"
)

const (
	TaxRate = 0.18

	CancellationDeadline = 24 * time.Hour
	FullRefundWindow     = 72 * time.Hour
	PartialRefundRatio   = 0.5

	MinAdults   = 1
	MaxAdults   = 10
	MaxChildren = 5

	// one loyalty point per this much of the booking total
	LoyaltyPointUnit = 100.0
)

// Overlaps reports whether [a1, a2) and [b1, b2) intersect. Touching
// endpoints do not overlap, so a checkout and a check-in on the same
// instant can share a room.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// Nights counts started 24h periods between checkIn and checkOut.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func ComputePricing(rate float64, checkIn, checkOut time.Time, discount float64) domain.Pricing {
	return PricingForNights(rate, Nights(checkIn, checkOut), discount)
}

func PricingForNights(rate float64, nights int, discount float64) domain.Pricing {
	subtotal := round2(rate * float64(nights))
	taxes := round2(subtotal * TaxRate)
	total := round2(subtotal + taxes - discount)
	if total < 0 {
		total = 0
	}
	return domain.Pricing{
		RoomRate: rate,
		Nights:   nights,
		Subtotal: subtotal,
		Taxes:    taxes,
		Discount: discount,
		Total:    total,
	}
}

// CanBeCancelled is true for bookings that may still move to cancelled and
// whose check-in is more than CancellationDeadline away.
func CanBeCancelled(b *domain.Booking, now time.Time) bool {
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return false
	}
	return b.CheckIn.Sub(now) > CancellationDeadline
}

// CalculateRefund applies the refund bands to the booking total. The last
// band never pays out because CanBeCancelled already rejects it; it is kept
// so the policy reads in full.
func CalculateRefund(b *domain.Booking, now time.Time) float64 {
	until := b.CheckIn.Sub(now)
	switch {
	case until > FullRefundWindow:
		return b.Pricing.Total
	case until > CancellationDeadline:
		return round2(b.Pricing.Total * PartialRefundRatio)
	default:
		return 0
	}
}

func RefundStatusFor(refund, total float64) domain.RefundStatus {
	switch {
	case refund > 0 && refund >= total:
		return domain.RefundFull
	case refund > 0:
		return domain.RefundPartial
	default:
		return domain.RefundNone
	}
}

// LoyaltyPoints earned for a booking total.
func LoyaltyPoints(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total / LoyaltyPointUnit))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
