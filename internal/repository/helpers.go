package repository

import (
	"math"
	"strings"

	"gorm.io/gorm"
)

func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page <= 0 {
		page = 1
	}
	if page-1 > math.MaxInt32/pageSize {
		page = math.MaxInt32/pageSize + 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching term as a literal substring. Use it with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
