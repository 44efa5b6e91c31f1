package specification

import "gorm.io/gorm"

// ByCategory scopes a query to one knowledge category. An empty category is a
// no-op so callers can pass the request value straight through.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	if s.Category == "" {
		return db
	}
	return db.Where("category = ?", s.Category)
}

// MostRecent orders by creation time descending and limits the result set.
type MostRecent struct {
	Limit int
}

func (s MostRecent) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Limit(s.Limit)
}
