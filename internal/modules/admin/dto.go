package admin

import (
	"strings"
	"time"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxExportRows   = 10000
)

type BookingsQuery struct {
	Status string `form:"status"`
	UserID int64  `form:"user_id" binding:"omitempty,min=1"`
	RoomID int64  `form:"room_id" binding:"omitempty,min=1"`
	From   string `form:"from"` // stays ending after
	To     string `form:"to"`   // stays starting before
	Sort   string `form:"sort"` // created_at, -created_at, check_in, -check_in
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type UsersQuery struct {
	Role     string `form:"role" binding:"omitempty,oneof=customer admin"`
	IsActive *bool  `form:"is_active"`
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SetUserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UserStatus struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

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
