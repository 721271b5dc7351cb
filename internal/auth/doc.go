// Package auth verifies optional bearer tokens for the MUC admin API.
//
// Tokens are JWTs signed with HS256 or RS256. The scopes claim grants
// muc:read (list rooms, read affiliations) and muc:write (set
// affiliations).
package auth
