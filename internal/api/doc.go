// Package api implements the HTTP surface of the MUC admin service.
//
// Three POST routes (/muc/list, /muc/get-affiliation and
// /muc/set-affiliation) are dispatched to the command orchestrator. Every
// response is a JSON object and carries an X-Correlation-ID header. Bodies
// above MaxBodyBytes abort the connection without a response.
package api
