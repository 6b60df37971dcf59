// Package assignment contains the Assignment aggregate: one rider delivering one order.
//
// An order has at most one live assignment (assigned, picked up or delivering) at a time.
// The aggregate only guards its own state machine; the single-live-assignment rule spans
// aggregates and is enforced by the assign use cases under an order row lock, backed by a
// partial unique index in storage.
package assignment
