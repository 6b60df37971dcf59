// Package services contains domain services whose rules span more than one aggregate.
//
//   - FeeCalculator: customer totals and the restaurant/platform split of an order amount
//   - AssignmentDispatcher: rider ranking and the order/assignment state changes of a dispatch
package services
