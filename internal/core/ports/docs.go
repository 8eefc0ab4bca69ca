// Package ports defines the contracts between the application core and its adapters:
// order and partner repositories, the unit of work that binds them to one transaction,
// and the publisher side of the notification bus.
package ports
