// Package services provides domain services for the purchasing system.
//
// The package includes:
//   - OrderWorkflow: the configurable rules for reviewing and receiving purchase orders
//     (approver role gate, approval-before-receipt guard)
package services
