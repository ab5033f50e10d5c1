// Package queries contains the read side of the purchasing service: the paginated
// order list and the single order view. Both return read models enriched with user
// display names; neither changes any state.
package queries
