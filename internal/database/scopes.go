package database

import "gorm.io/gorm"

// NotDeleted excludes soft-deleted tasks. The default read path;
// administrative reads opt out by not applying it.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("tasks.is_deleted = ?", false)
}

// Paginate applies page-based limits. Zero values leave the query
// unbounded.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
