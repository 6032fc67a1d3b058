package repository

import (
	"strings"

	"agriportal/internal/model"

	"gorm.io/gorm"
)

// applyCaseFilter translates the uniform CaseFilter into predicates.
// District, officer and status are equality matches; the keyword is an
// ILIKE substring match over the given columns. The same translation is
// shared by every case-graph repository so listings and report numbers
// stay comparable.
func applyCaseFilter(db *gorm.DB, f model.CaseFilter, keywordCols ...string) *gorm.DB {
	if f.DateFrom != nil {
		db = db.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		db = db.Where("created_at <= ?", *f.DateTo)
	}
	if f.District != "" {
		db = db.Where("district = ?", f.District)
	}
	if f.OfficerID != nil {
		db = db.Where("user_id = ?", *f.OfficerID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.Keyword != "" && len(keywordCols) > 0 {
		conds := make([]string, 0, len(keywordCols))
		args := make([]interface{}, 0, len(keywordCols))
		pattern := "%" + f.Keyword + "%"
		for _, col := range keywordCols {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(conds, " OR "), args...)
	}
	return db
}
