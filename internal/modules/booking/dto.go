package booking

import (
	"encoding/json"
	"strings"
	"time"

	"hotelbooking/internal/domain"
)

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

type GuestsInput struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type GuestInput struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=20"`
	Age       int    `json:"age" binding:"omitempty,min=0,max=120"`
}

type GuestDetailsInput struct {
	PrimaryGuest     GuestInput   `json:"primary_guest"`
	AdditionalGuests []GuestInput `json:"additional_guests" binding:"omitempty,dive"`
}

type SpecialRequestInput struct {
	Type        string `json:"type" binding:"required,oneof=early-checkin late-checkout extra-bed airport-pickup dietary other"`
	Description string `json:"description" binding:"max=300"`
}

type CreateBookingRequest struct {
	RoomID          int64                 `json:"room_id" binding:"required,gt=0"`
	CheckIn         Date                  `json:"check_in"`
	CheckOut        Date                  `json:"check_out"`
	Guests          GuestsInput           `json:"guests"`
	GuestDetails    GuestDetailsInput     `json:"guest_details"`
	PaymentMethod   domain.PaymentMethod  `json:"payment_method" binding:"required"`
	SpecialRequests []SpecialRequestInput `json:"special_requests" binding:"omitempty,dive"`
	Preferences     *domain.Preferences   `json:"preferences"`
	CustomerNotes   string                `json:"customer_notes" binding:"max=500"`
}

type ModifyBookingRequest struct {
	CheckIn         *Date                  `json:"check_in"`
	CheckOut        *Date                  `json:"check_out"`
	Guests          *GuestsInput           `json:"guests"`
	GuestDetails    *GuestDetailsInput     `json:"guest_details"`
	SpecialRequests *[]SpecialRequestInput `json:"special_requests" binding:"omitempty,dive"`
	Preferences     *domain.Preferences    `json:"preferences"`
	CustomerNotes   *string                `json:"customer_notes" binding:"omitempty,max=500"`
	AdminNotes      *string                `json:"admin_notes" binding:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ConfirmPaymentRequest struct {
	Status        domain.PaymentStatus `json:"status" binding:"required"`
	TransactionID string               `json:"transaction_id" binding:"max=100"`
	PaidAmount    *float64             `json:"paid_amount" binding:"omitempty,gte=0"`
}

type AvailabilityRequest struct {
	CheckIn  Date `json:"check_in"`
	CheckOut Date `json:"check_out"`
}

type AvailabilityResult struct {
	Available bool           `json:"available"`
	Room      *domain.Room   `json:"room"`
	CheckIn   time.Time      `json:"check_in"`
	CheckOut  time.Time      `json:"check_out"`
	Pricing   domain.Pricing `json:"pricing"`
}

type CancellationResult struct {
	RefundAmount float64             `json:"refund_amount"`
	RefundStatus domain.RefundStatus `json:"refund_status"`
	Booking      *domain.Booking     `json:"booking"`
}

type ListQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Sort   string `form:"sort"` // created_at, -created_at, check_in, -check_in
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

func toGuest(in GuestInput) domain.Guest {
	return domain.Guest{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Age:       in.Age,
	}
}

func toGuestDetails(in GuestDetailsInput) domain.GuestDetails {
	out := domain.GuestDetails{PrimaryGuest: toGuest(in.PrimaryGuest)}
	for _, g := range in.AdditionalGuests {
		out.AdditionalGuests = append(out.AdditionalGuests, toGuest(g))
	}
	return out
}

func toSpecialRequests(in []SpecialRequestInput) []domain.SpecialRequest {
	out := make([]domain.SpecialRequest, 0, len(in))
	for _, r := range in {
		out = append(out, domain.SpecialRequest{
			Type:        r.Type,
			Description: strings.TrimSpace(r.Description),
			Status:      "pending",
		})
	}
	return out
}
