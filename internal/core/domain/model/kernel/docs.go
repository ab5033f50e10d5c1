// Package kernel holds the value objects shared by the purchasing domain model:
// UUID identifiers and non-negative Money amounts.
package kernel
