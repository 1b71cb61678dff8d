package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// OptionKind identifies one of the reference-data categories. The set is
// closed: kind strings arriving from clients are parsed through
// ParseOptionKind and never used to address tables directly.
type OptionKind string

const (
	OptionKindCommodity     OptionKind = "commodities"
	OptionKindTimeframe     OptionKind = "timeframes"
	OptionKindTradeType     OptionKind = "trade-types"
	OptionKindTrendlineType OptionKind = "trendline-types"
	OptionKindEntryType     OptionKind = "entry-types"
	OptionKindTag           OptionKind = "tags"
)

// AllOptionKinds lists every valid kind in presentation order
var AllOptionKinds = []OptionKind{
	OptionKindCommodity,
	OptionKindTimeframe,
	OptionKindTradeType,
	OptionKindTrendlineType,
	OptionKindEntryType,
	OptionKindTag,
}

// ErrUnknownOptionKind is returned when a client-supplied kind string does
// not belong to the closed set
var ErrUnknownOptionKind = errors.New("unknown option kind")

// ParseOptionKind validates a client-supplied kind string
func ParseOptionKind(s string) (OptionKind, error) {
	kind := OptionKind(s)
	for _, k := range AllOptionKinds {
		if kind == k {
			return kind, nil
		}
	}
	return "", ErrUnknownOptionKind
}

// IsPerUser reports whether entries of this kind are scoped to a user.
// Tags are; every other kind is shared reference data.
func (k OptionKind) IsPerUser() bool {
	return k == OptionKindTag
}

// OptionItem is the common shape of one reference-data entry, independent
// of which kind it belongs to
type OptionItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OptionRef is the {id, name} pair used when resolving relations in trade
// responses
type OptionRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ReorderItem is one entry of a batch display-order update
type ReorderItem struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	DisplayOrder int       `json:"display_order"`
}
