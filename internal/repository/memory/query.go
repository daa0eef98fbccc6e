package memory

import (
	"sort"
	"time"

	"ai-writing-be/internal/repository/specification"

	"github.com/google/uuid"
)

// record exposes the fields the in-memory backend can filter and sort on.
type record interface {
	recordID() uuid.UUID
	documentID() uuid.UUID
	timeField(name string) (time.Time, bool)
}

// applySpecifications interprets the specifications the gorm backend turns
// into SQL. Unknown specifications are ignored.
func applySpecifications[T record](items []T, specs ...specification.Specification) []T {
	var order *specification.OrderBy

	filtered := items[:0:0]
	for _, item := range items {
		if matches(item, specs) {
			filtered = append(filtered, item)
		}
	}

	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok {
			order = &s
		}
	}

	if order != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			a, _ := filtered[i].timeField(order.Field)
			b, _ := filtered[j].timeField(order.Field)
			if order.Desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	}

	return filtered
}

func matches(item record, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if item.recordID() != s.ID {
				return false
			}
		case specification.ByDocumentID:
			if item.documentID() != s.DocumentID {
				return false
			}
		}
	}
	return true
}
