package specification

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SortSpec and FilterSpec are the structured shapes the listing endpoint passes
// through. The service never interprets sort/filter syntax itself; this package
// turns the shapes into query predicates.

type SortSpec struct {
	Property  string
	Direction string // "ASC" | "DESC"
}

type FilterSpec struct {
	Property string
	Rule     string // "eq" | "neq" | "like"
	Value    interface{}
}

// Column whitelist per listable resource. Anything outside the map is ignored
// so a crafted property name can never reach the SQL string.
var conversationColumns = map[string]string{
	"createdAt": "conversations.created_at",
	"updatedAt": "conversations.updated_at",
}

type sortBy struct {
	column string
	desc   bool
}

func (s sortBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.column, direction))
}

type filterRule struct {
	column string
	rule   string
	value  interface{}
}

func (f filterRule) Apply(db *gorm.DB) *gorm.DB {
	switch f.rule {
	case "neq":
		return db.Where(fmt.Sprintf("%s <> ?", f.column), f.value)
	case "like":
		return db.Where(fmt.Sprintf("%s ILIKE ?", f.column), fmt.Sprintf("%%%v%%", f.value))
	default: // "eq"
		return db.Where(fmt.Sprintf("%s = ?", f.column), f.value)
	}
}

// FromConversationQuery translates sort/filter shapes into specifications for
// the conversation listing. Unknown properties are dropped; an empty input
// yields the default updated_at DESC ordering.
func FromConversationQuery(sorts []SortSpec, filters []FilterSpec) []Specification {
	specs := make([]Specification, 0, len(sorts)+len(filters))

	for _, f := range filters {
		column, ok := conversationColumns[f.Property]
		if !ok {
			continue
		}
		specs = append(specs, filterRule{column: column, rule: strings.ToLower(f.Rule), value: f.Value})
	}

	ordered := false
	for _, s := range sorts {
		column, ok := conversationColumns[s.Property]
		if !ok {
			continue
		}
		specs = append(specs, sortBy{column: column, desc: strings.EqualFold(s.Direction, "DESC")})
		ordered = true
	}
	if !ordered {
		specs = append(specs, sortBy{column: "conversations.updated_at", desc: true})
	}

	return specs
}
