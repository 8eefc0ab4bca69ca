// Package access holds the authenticated principal and the authorization policy
// evaluated by every order operation.
package access
