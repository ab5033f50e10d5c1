// Package identity models the authenticated actor (user id, role and display name)
// that commands record as creator or reviewer of a purchase order.
package identity
