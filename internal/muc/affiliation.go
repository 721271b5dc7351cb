package muc

import "github.com/samber/lo"

// Affiliation is a role a user holds with respect to a room.
type Affiliation string

const (
	AffiliationOwner   Affiliation = "owner"
	AffiliationAdmin   Affiliation = "admin"
	AffiliationMember  Affiliation = "member"
	AffiliationNone    Affiliation = "none"
	AffiliationOutcast Affiliation = "outcast"
)

// Affiliations lists every affiliation in canonical order.
var Affiliations = []Affiliation{
	AffiliationOwner,
	AffiliationAdmin,
	AffiliationMember,
	AffiliationNone,
	AffiliationOutcast,
}

// ValidAffiliation reports whether s names an affiliation exactly.
// The comparison is case-sensitive and s is not trimmed.
func ValidAffiliation(s string) bool {
	return lo.Contains(Affiliations, Affiliation(s))
}

// ParseAffiliationName converts s to an Affiliation.
func ParseAffiliationName(s string) (Affiliation, bool) {
	if !ValidAffiliation(s) {
		return "", false
	}
	return Affiliation(s), true
}

func (a Affiliation) String() string {
	return string(a)
}
