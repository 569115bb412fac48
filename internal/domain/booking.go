package domain

import "time"

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit-card"
	PaymentDebitCard    PaymentMethod = "debit-card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
	PaymentCash         PaymentMethod = "cash"
	PaymentUPI          PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPayPal, PaymentBankTransfer, PaymentCash, PaymentUPI:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentCompleted         PaymentStatus = "completed"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially-refunded"
)

type RefundStatus string

const (
	RefundNotApplicable RefundStatus = "not-applicable"
	RefundFull          RefundStatus = "full"
	RefundPartial       RefundStatus = "partial"
	RefundNone          RefundStatus = "none"
)

type GuestCount struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (g GuestCount) Total() int {
	return g.Adults + g.Children
}

type Guest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Age       int    `json:"age,omitempty"`
}

type GuestDetails struct {
	PrimaryGuest     Guest   `json:"primary_guest"`
	AdditionalGuests []Guest `json:"additional_guests,omitempty"`
}

type Pricing struct {
	RoomRate       float64 `json:"room_rate"`
	Nights         int     `json:"nights"`
	Subtotal       float64 `json:"subtotal"`
	Taxes          float64 `json:"taxes"`
	Discount       float64 `json:"discount"`
	DiscountReason string  `json:"discount_reason,omitempty"`
	Total          float64 `json:"total"`
}

type Payment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaidAmount    float64       `json:"paid_amount"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`
	RefundAmount  float64       `json:"refund_amount"`
	RefundDate    *time.Time    `json:"refund_date,omitempty"`
}

type SpecialRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type Preferences struct {
	Smoking      bool   `json:"smoking"`
	FloorLevel   string `json:"floor_level,omitempty"`
	RoomLocation string `json:"room_location,omitempty"`
	EarlyCheckIn bool   `json:"early_check_in"`
	LateCheckOut bool   `json:"late_check_out"`
}

type Notes struct {
	Customer     string `json:"customer,omitempty"`
	Admin        string `json:"admin,omitempty"`
	Housekeeping string `json:"housekeeping,omitempty"`
}

type Cancellation struct {
	IsCancelled  bool         `json:"is_cancelled"`
	CancelledAt  *time.Time   `json:"cancelled_at,omitempty"`
	CancelledBy  *int64       `json:"cancelled_by,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	RefundStatus RefundStatus `json:"refund_status"`
}

type Booking struct {
	ID              int64            `json:"id"`
	BookingNumber   string           `json:"booking_number"`
	UserID          int64            `json:"user_id"`
	RoomID          int64            `json:"room_id"`
	CheckIn         time.Time        `json:"check_in"`
	CheckOut        time.Time        `json:"check_out"`
	Guests          GuestCount       `json:"guests"`
	GuestDetails    GuestDetails     `json:"guest_details"`
	Pricing         Pricing          `json:"pricing"`
	Payment         Payment          `json:"payment"`
	Status          BookingStatus    `json:"status"`
	SpecialRequests []SpecialRequest `json:"special_requests,omitempty"`
	Preferences     Preferences      `json:"preferences"`
	Notes           Notes            `json:"notes"`
	CheckInTime     *time.Time       `json:"check_in_time,omitempty"`
	CheckOutTime    *time.Time       `json:"check_out_time,omitempty"`
	Cancellation    Cancellation     `json:"cancellation"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (b *Booking) Nights() int {
	return b.Pricing.Nights
}
