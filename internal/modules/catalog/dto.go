package catalog

import (
	"strings"
	"time"

	"hotelbooking/internal/domain"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type ListRoomsQuery struct {
	Page      int      `form:"page" binding:"omitempty,min=1"`
	Limit     int      `form:"limit" binding:"omitempty,min=1,max=100"`
	RoomType  string   `form:"room_type" binding:"omitempty,oneof=single double suite deluxe presidential"`
	MinPrice  *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"max_price" binding:"omitempty,gte=0"`
	Adults    int      `form:"adults" binding:"omitempty,min=1,max=10"`
	Children  int      `form:"children" binding:"omitempty,min=0,max=5"`
	Amenities string   `form:"amenities"` // comma separated, all must match
	Search    string   `form:"search" binding:"max=100"`
	CheckIn   string   `form:"check_in"`
	CheckOut  string   `form:"check_out"`
}

func (q ListRoomsQuery) normalize() ListRoomsQuery {
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

func (q ListRoomsQuery) amenities() []string {
	if strings.TrimSpace(q.Amenities) == "" {
		return nil
	}
	var out []string
	for _, a := range strings.Split(q.Amenities, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

type CapacityInput struct {
	Adults   int `json:"adults" binding:"required,min=1,max=10"`
	Children int `json:"children" binding:"min=0,max=5"`
}

type CreateRoomRequest struct {
	RoomNumber  string          `json:"room_number" binding:"required,max=10"`
	RoomType    domain.RoomType `json:"room_type" binding:"required,oneof=single double suite deluxe presidential"`
	Description string          `json:"description" binding:"required,min=10,max=1000"`
	Price       float64         `json:"price" binding:"gte=0"`
	Capacity    CapacityInput   `json:"capacity"`
	Size        int             `json:"size" binding:"omitempty,min=0"`
	BedType     domain.BedType  `json:"bed_type" binding:"required,oneof=single double queen king twin"`
	Amenities   []string        `json:"amenities"`
	Images      []string        `json:"images" binding:"omitempty,dive,url"`
	Floor       int             `json:"floor" binding:"required,min=1,max=50"`
}

type UpdateRoomRequest struct {
	RoomNumber  *string          `json:"room_number" binding:"omitempty,min=1,max=10"`
	RoomType    *domain.RoomType `json:"room_type" binding:"omitempty,oneof=single double suite deluxe presidential"`
	Description *string          `json:"description" binding:"omitempty,min=10,max=1000"`
	Price       *float64         `json:"price" binding:"omitempty,gte=0"`
	Capacity    *CapacityInput   `json:"capacity"`
	Size        *int             `json:"size" binding:"omitempty,min=0"`
	BedType     *domain.BedType  `json:"bed_type" binding:"omitempty,oneof=single double queen king twin"`
	Amenities   *[]string        `json:"amenities"`
	Images      *[]string        `json:"images" binding:"omitempty,dive,url"`
	Floor       *int             `json:"floor" binding:"omitempty,min=1,max=50"`
	IsActive    *bool            `json:"is_active"`
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
