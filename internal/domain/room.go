package domain

import "time"

type RoomType string

const (
	RoomSingle       RoomType = "single"
	RoomDouble       RoomType = "double"
	RoomSuite        RoomType = "suite"
	RoomDeluxe       RoomType = "deluxe"
	RoomPresidential RoomType = "presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe, RoomPresidential:
		return true
	}
	return false
}

type BedType string

const (
	BedSingle BedType = "single"
	BedDouble BedType = "double"
	BedQueen  BedType = "queen"
	BedKing   BedType = "king"
	BedTwin   BedType = "twin"
)

func (b BedType) Valid() bool {
	switch b {
	case BedSingle, BedDouble, BedQueen, BedKing, BedTwin:
		return true
	}
	return false
}

// RoomCapacity bounds: adults 1..10, children 0..5.
type RoomCapacity struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type Room struct {
	ID          int64        `json:"id"`
	RoomNumber  string       `json:"room_number"`
	RoomType    RoomType     `json:"room_type"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Capacity    RoomCapacity `json:"capacity"`
	Size        int          `json:"size,omitempty"`
	BedType     BedType      `json:"bed_type"`
	Amenities   []string     `json:"amenities,omitempty"`
	Images      []string     `json:"images,omitempty"`
	Floor       int          `json:"floor"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (r *Room) TotalCapacity() int {
	return r.Capacity.Adults + r.Capacity.Children
}
