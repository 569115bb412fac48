package domain

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no-show"
)

// no-show has no inbound edge; it is a valid stored value only.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {},
	BookingCancelled:  {},
	BookingNoShow:     {},
}

func (s BookingStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Occupying statuses block the room for availability purposes.
func (s BookingStatus) Occupying() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

var OccupyingStatuses = []BookingStatus{BookingConfirmed, BookingCheckedIn}
