// Package http is the REST and WebSocket adapter. Every response uses the envelope
//
//	{"success": true|false, "message": "...", ...payload}
//
// Callers are identified by an HS256 bearer token issued elsewhere; its claims are
// turned into an access.Principal before any use case runs.
package http
