// Package queries contains the read operations of the marketplace. Order reads go
// through ports.OrderRepository outside any unit of work, so they always observe
// committed state; earnings are aggregated with plain SQL.
package queries
