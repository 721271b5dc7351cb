package muc

import (
	"regexp"
	"strings"
)

// Default domains of the Snikket deployment.
const (
	DefaultBaseDomain = "protype.tw"
	DefaultUserDomain = "chat.protype.tw"
	DefaultRoomDomain = "groups.chat.protype.tw"
)

// localPart is the alphabet allowed before the '@' of a JID.
const localPart = `[A-Za-z0-9._-]+`

// Domains is the immutable set of domains identifiers are checked against.
type Domains struct {
	Base string
	User string
	Room string

	roomPattern *regexp.Regexp
	userPattern *regexp.Regexp
}

// NewDomains compiles the identifier patterns for the given domains.
func NewDomains(base, user, room string) *Domains {
	return &Domains{
		Base:        base,
		User:        user,
		Room:        room,
		roomPattern: jidPattern(room),
		userPattern: jidPattern(user),
	}
}

// DefaultDomains returns the domains of the default deployment.
func DefaultDomains() *Domains {
	return NewDomains(DefaultBaseDomain, DefaultUserDomain, DefaultRoomDomain)
}

func jidPattern(domain string) *regexp.Regexp {
	return regexp.MustCompile(`^` + localPart + `@` + regexp.QuoteMeta(domain) + `$`)
}

// ValidRoom reports whether s is a room JID on the room domain.
func (d *Domains) ValidRoom(s string) bool {
	return d.roomPattern.MatchString(s)
}

// ValidUser reports whether s is a user JID on the user domain.
func (d *Domains) ValidUser(s string) bool {
	return d.userPattern.MatchString(s)
}

// ValidMucDomain reports whether s ends with "."+Base.
// Only the suffix is checked; callers must escape s before embedding it.
func (d *Domains) ValidMucDomain(s string) bool {
	return strings.HasSuffix(s, "."+d.Base)
}
