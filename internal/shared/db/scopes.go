package db

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate applies offset and limit for a 1-based page.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}

// ContainsFold matches column against term case-insensitively. An empty term
// leaves the query untouched.
func ContainsFold(column, term string) func(db *gorm.DB) *gorm.DB {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
	}
}

// EqualIfSet adds an equality filter only for a non-empty value.
func EqualIfSet(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}
