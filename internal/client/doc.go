// Package client is a Go client for the MUC admin HTTP API.
package client
