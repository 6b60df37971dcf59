// Package order contains the Order aggregate and its status state machine.
package order
