// Package muc holds the multi-user-chat vocabulary of the service.
//
// It decides whether room identifiers, user identifiers, affiliation roles
// and MUC domains are well formed, and it renders the administration shell
// commands for the three supported operations. Nothing in this package
// performs I/O.
//
// Room and user identifiers are restricted to the alphabet [A-Za-z0-9._-]
// before the '@', so they are embedded into shell literals verbatim. The
// MUC domain is only checked by suffix; ListRooms escapes single quotes in
// it before embedding. Keep both sides of that contract together.
package muc
