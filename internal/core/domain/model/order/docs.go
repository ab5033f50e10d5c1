// Package order provides the purchase order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root (supplier, line items, amounts, reviewers, receipt)
//   - Status: the one-directional state machine pending -> approved|rejected, approved -> delivered
//   - Number: the "PO-000123" order number derived from the sequence counter
//   - Supplier, LineItem, ReceivedItem: value objects owned by the order
//   - Patch: the whitelist of fields a generic update may change
//
// Constructors validate every field and join all problems with errors.Join, so a single
// call reports each offending field (see errs.Fields). Restore functions rebuild
// persisted state without re-running business validation.
package order
