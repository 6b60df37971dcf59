// Package rider contains the Rider aggregate: approval state, online presence and the
// delivery counter of a delivery rider.
package rider
