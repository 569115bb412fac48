package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/sirupsen/logrus"
)

type Service struct {
	rooms     RoomRepository
	occupancy OccupancyChecker
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(rooms RoomRepository, occupancy OccupancyChecker, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{rooms: rooms, occupancy: occupancy, log: log, now: time.Now}
}

/* ---------- PUBLIC ---------- */

// ListRooms returns active rooms matching q. When both dates are given only
// rooms free of confirmed or checked-in stays over that range are listed.
func (s *Service) ListRooms(ctx context.Context, q ListRoomsQuery) ([]domain.Room, int64, error) {
	q = q.normalize()
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, 0, fmt.Errorf("%w: min_price exceeds max_price", ErrValidation)
	}

	f := repository.RoomFilter{
		RoomType:  q.RoomType,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Adults:    q.Adults,
		Children:  q.Children,
		Amenities: q.amenities(),
		Search:    q.Search,
		Limit:     q.Limit,
		Offset:    (q.Page - 1) * q.Limit,
	}

	if q.CheckIn != "" || q.CheckOut != "" {
		if q.CheckIn == "" || q.CheckOut == "" {
			return nil, 0, fmt.Errorf("%w: check_in and check_out go together", ErrValidation)
		}
		in, err := parseDate(q.CheckIn)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: check_in", ErrValidation)
		}
		out, err := parseDate(q.CheckOut)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: check_out", ErrValidation)
		}
		if !out.After(in) {
			return nil, 0, ErrInvalidDateRange
		}
		f.CheckIn, f.CheckOut = &in, &out
	}

	return s.rooms.List(ctx, f)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

/* ---------- ADMIN ---------- */

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	number := strings.TrimSpace(req.RoomNumber)
	if err := s.ensureNumberFree(ctx, number, 0); err != nil {
		return nil, err
	}

	room := &domain.Room{
		RoomNumber:  number,
		RoomType:    req.RoomType,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Capacity:    domain.RoomCapacity{Adults: req.Capacity.Adults, Children: req.Capacity.Children},
		Size:        req.Size,
		BedType:     req.BedType,
		Amenities:   cleanList(req.Amenities),
		Images:      cleanList(req.Images),
		Floor:       req.Floor,
		IsActive:    true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"room_id": room.ID, "room_number": room.RoomNumber}).Info("room created")
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		number := strings.TrimSpace(*req.RoomNumber)
		if number != room.RoomNumber {
			if err := s.ensureNumberFree(ctx, number, room.ID); err != nil {
				return nil, err
			}
			room.RoomNumber = number
		}
	}
	if req.RoomType != nil {
		room.RoomType = *req.RoomType
	}
	if req.Description != nil {
		room.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Capacity != nil {
		room.Capacity = domain.RoomCapacity{Adults: req.Capacity.Adults, Children: req.Capacity.Children}
	}
	if req.Size != nil {
		room.Size = *req.Size
	}
	if req.BedType != nil {
		room.BedType = *req.BedType
	}
	if req.Amenities != nil {
		room.Amenities = cleanList(*req.Amenities)
	}
	if req.Images != nil {
		room.Images = cleanList(*req.Images)
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}
	return room, nil
}

// DeleteRoom deactivates the room. Bookings keep pointing at it, so rows
// are never removed.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}

	busy, err := s.occupancy.HasUpcomingOccupying(ctx, id, s.now().UTC())
	if err != nil {
		return err
	}
	if busy {
		return ErrRoomHasActiveBookings
	}

	if err := s.rooms.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.log.WithField("room_id", id).Info("room deactivated")
	return nil
}

func (s *Service) ensureNumberFree(ctx context.Context, number string, excludeID int64) error {
	taken, err := s.rooms.ExistsByNumber(ctx, number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrRoomNumberTaken
	}
	return nil
}
