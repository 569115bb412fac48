package repository

import "gorm.io/gorm"

// Models lists every table owned by this package in migration order.
func Models() []any {
	return []any{
		&userModel{},
		&roomModel{},
		&bookingModel{},
		&bookingSequenceModel{},
	}
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}
