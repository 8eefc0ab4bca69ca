// Package bus is the real-time notification bus. Commands publish through a
// Dispatcher, which never blocks the caller; a single worker hands events to a Sink
// in publish order. The local Hub fans events out to connected subscribers; the
// Redis and AMQP relays carry events between processes and feed each process's Hub.
//
// Delivery is at-least-once to subscribers connected at publish time. Nothing is
// stored: a subscriber that falls behind is disconnected and re-fetches state.
package bus
