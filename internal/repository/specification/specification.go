// Package specification holds the query filters shared by the gorm and
// in-memory repositories. The gorm backend turns them into SQL; the memory
// backend interprets them in Go.
package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

const (
	FieldLastModified = "last_modified"
	FieldTimestamp    = "timestamp"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByDocumentID selects the snapshots of one document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// OrderBy sorts on a time column; Field is one of the Field constants.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

func MostRecentlyModified() Specification {
	return OrderBy{Field: FieldLastModified, Desc: true}
}

func NewestFirst() Specification {
	return OrderBy{Field: FieldTimestamp, Desc: true}
}
