package repository

import (
	"strings"

	"github.com/kellyworkos00-droid/fairm/entity"
	"gorm.io/gorm"
)

// ProductFilter is the full set of supported GET /products query fields.
type ProductFilter struct {
	Category entity.ProductCategory `json:"category,omitempty"`
	Search   string                 `json:"search,omitempty"`
	Location string                 `json:"location,omitempty"`
}

type AgrovetFilter struct {
	Region   string
	Category string
	Take     int
}

type EventFilter struct {
	Region    string
	Category  string
	AfterDays int
}

type EducationFilter struct {
	Category string
	Premium  *bool
}

type MarketFilter struct {
	Product string
	Market  string
	Days    int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const likeEscape = ` ESCAPE '\'`

// whereContains adds a case-insensitive substring match on col. Postgres
// gets ILIKE, which folds every script. sqlite's LOWER() folds ASCII letters
// only, so the pattern is folded the same way and other letters must match
// exactly.
func whereContains(q *gorm.DB, col, s string) *gorm.DB {
	cond, pattern := containsClause(q.Dialector.Name(), col, s)
	return q.Where(cond, pattern)
}

func containsClause(dialect, col, s string) (string, string) {
	s = strings.TrimSpace(s)
	if dialect == "postgres" {
		return col + " ILIKE ?" + likeEscape, "%" + likeEscaper.Replace(s) + "%"
	}
	return "LOWER(" + col + ") LIKE ?" + likeEscape, "%" + likeEscaper.Replace(asciiLower(s)) + "%"
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
