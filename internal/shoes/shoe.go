// Package shoes is the read model of running shoes used to attribute mileage.
package shoes

import (
	"regexp"
	"strings"
	"time"
)

type Shoe struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	RetiredAt       *time.Time `json:"retired_at"`
	Notes           *string    `json:"notes"`
	RetirementNotes *string    `json:"retirement_notes"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

func (s Shoe) IsRetired() bool {
	return s.RetiredAt != nil
}

var nonIDChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateID derives the deterministic id of a shoe from its display name,
// e.g. "Nike Pegasus 38" becomes "nike_pegasus_38".
func GenerateID(name string) string {
	return strings.Trim(nonIDChars.ReplaceAllString(strings.ToLower(name), "_"), "_")
}
