// Package kernel holds the value objects shared by every aggregate of the dispatch domain:
// UUID identifiers, Money amounts and Percent rates.
//
// Value objects are immutable. Their zero values are invalid and are rejected by Validate,
// so an aggregate that accepts a kernel value can rely on it having passed a constructor.
package kernel
