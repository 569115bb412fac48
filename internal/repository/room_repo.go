package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID               int64          `gorm:"column:id;primaryKey"`
	RoomNumber       string         `gorm:"column:room_number;size:20;uniqueIndex;not null"`
	RoomType         string         `gorm:"column:room_type;size:20;index;not null"`
	Description      string         `gorm:"column:description;size:500"`
	Price            float64        `gorm:"column:price;not null"`
	CapacityAdults   int            `gorm:"column:capacity_adults;not null"`
	CapacityChildren int            `gorm:"column:capacity_children;not null"`
	Size             int            `gorm:"column:size"`
	BedType          string         `gorm:"column:bed_type;size:20"`
	Amenities        datatypes.JSON `gorm:"column:amenities"`
	Images           datatypes.JSON `gorm:"column:images"`
	Floor            int            `gorm:"column:floor"`
	IsActive         bool           `gorm:"column:is_active;index;not null"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:          m.ID,
		RoomNumber:  m.RoomNumber,
		RoomType:    domain.RoomType(m.RoomType),
		Description: m.Description,
		Price:       m.Price,
		Capacity: domain.RoomCapacity{
			Adults:   m.CapacityAdults,
			Children: m.CapacityChildren,
		},
		Size:      m.Size,
		BedType:   domain.BedType(m.BedType),
		Amenities: decodeStrings(m.Amenities),
		Images:    decodeStrings(m.Images),
		Floor:     m.Floor,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:               r.ID,
		RoomNumber:       strings.TrimSpace(r.RoomNumber),
		RoomType:         string(r.RoomType),
		Description:      r.Description,
		Price:            r.Price,
		CapacityAdults:   r.Capacity.Adults,
		CapacityChildren: r.Capacity.Children,
		Size:             r.Size,
		BedType:          string(r.BedType),
		Amenities:        encodeJSON(r.Amenities),
		Images:           encodeJSON(r.Images),
		Floor:            r.Floor,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).Where("room_number = ?", strings.TrimSpace(number)).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&roomModel{}).Where("room_number = ?", strings.TrimSpace(number))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Model(&m).Select("*").Omit("id", "created_at").Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", id).Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type RoomFilter struct {
	RoomType    string
	MinPrice    *float64
	MaxPrice    *float64
	Adults      int
	Children    int
	Amenities   []string
	Search      string
	CheckIn     *time.Time
	CheckOut    *time.Time
	IncludeIdle bool // include inactive rooms
	Limit       int
	Offset      int
}

// List returns rooms matching f ordered by price. Amenity matching runs
// after the query because JSON containment differs per dialect; in that
// case pagination is applied in memory.
func (r *RoomRepository) List(ctx context.Context, f RoomFilter) ([]domain.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})
	if !f.IncludeIdle {
		q = q.Where("is_active = ?", true)
	}
	if f.RoomType != "" {
		q = q.Where("room_type = ?", f.RoomType)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Adults > 0 {
		q = q.Where("capacity_adults >= ?", f.Adults)
	}
	if f.Children > 0 {
		q = q.Where("capacity_children >= ?", f.Children)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(room_number) LIKE ? OR LOWER(room_type) LIKE ?", like, like, like)
	}
	if f.CheckIn != nil && f.CheckOut != nil {
		q = q.Where(`NOT EXISTS (
SELECT 1 FROM bookings b
WHERE b.room_id = rooms.id
  AND b.status IN ?
  AND b.check_in < ?
  AND b.check_out > ?)`, occupyingStatuses(), *f.CheckOut, *f.CheckIn)
	}
	q = q.Order("price ASC").Order("id ASC")

	if len(f.Amenities) == 0 {
		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, 0, err
		}
		var rows []roomModel
		if err := paginate(q, f.Limit, f.Offset).Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		return toDomainRooms(rows), total, nil
	}

	var rows []roomModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	matched := make([]domain.Room, 0, len(rows))
	for _, room := range toDomainRooms(rows) {
		if hasAll(room.Amenities, f.Amenities) {
			matched = append(matched, room)
		}
	}
	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []domain.Room{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func toDomainRooms(rows []roomModel) []domain.Room {
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out
}

func hasAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[strings.ToLower(a)] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; !ok {
			return false
		}
	}
	return true
}

func encodeJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

func decodeStrings(raw datatypes.JSON) []string {
	var out []string
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
