package muc

import (
	"strings"

	"github.com/samber/lo"
)

// ParseRoomList extracts room JIDs from the output of muc:list.
// Table decoration lines (starting with '|') and lines without '@' are
// dropped.
func ParseRoomList(stdout string) []string {
	lines := lo.Map(strings.Split(strings.TrimSpace(stdout), "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
	return lo.Filter(lines, func(line string, _ int) bool {
		return line != "" && !strings.HasPrefix(line, "|") && strings.Contains(line, "@")
	})
}

// ParseAffiliation extracts the affiliation from the output of
// get_affiliation. The first affiliation name contained in the lower-cased
// output wins, in the order of Affiliations.
func ParseAffiliation(stdout string) (Affiliation, bool) {
	out := strings.ToLower(strings.TrimSpace(stdout))
	return lo.Find(Affiliations, func(a Affiliation) bool {
		return strings.Contains(out, string(a))
	})
}
