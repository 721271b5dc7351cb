package muc

import "strings"

// Namespace is the administration shell namespace for MUC operations.
const Namespace = "muc"

// ListRooms renders muc:list('<domain>').
// Every ' in mucDomain is replaced with \' since the domain is only
// suffix-checked.
func ListRooms(mucDomain string) string {
	return Namespace + ":list('" + escapeQuotes(mucDomain) + "')"
}

// GetAffiliation renders muc:room('<room>'):get_affiliation('<user>').
// room and user must have passed ValidRoom and ValidUser.
func GetAffiliation(room, user string) string {
	return roomCall(room) + ":get_affiliation('" + user + "')"
}

// SetAffiliation renders
// muc:room('<room>'):set_affiliation(true, '<user>', '<affiliation>').
// The leading true marks the change as an administrative override.
func SetAffiliation(room, user string, affiliation Affiliation) string {
	return roomCall(room) + ":set_affiliation(true, '" + user + "', '" + string(affiliation) + "')"
}

func roomCall(room string) string {
	return Namespace + ":room('" + room + "')"
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
