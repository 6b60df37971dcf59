// Package catalog holds the restaurants and meals orders are placed against.
//
// Only what order placement and earnings need is modelled: ownership of meals, prices
// and availability, and the address restaurant notifications go to.
package catalog
