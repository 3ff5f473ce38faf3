package models

// Assignment is the computed giver -> recipient mapping for one group.
//
// It is a permutation of the group's roster with no fixed points and no
// pair present in the exclusion config. An assignment is computed at most
// once per group and never modified afterwards; deleting the group's entry
// from the store is the only way to force recomputation.
type Assignment struct {
	// GroupID is the group this assignment belongs to.
	GroupID string

	// Pairs maps each giver's username to their recipient's username.
	Pairs map[string]string

	// CreatedAt is the Unix timestamp when the assignment was computed.
	CreatedAt int64
}

// RecipientOf returns the recipient assigned to the given giver, or ""
// if the giver is not part of this assignment.
func (a *Assignment) RecipientOf(giver string) string {
	return a.Pairs[giver]
}
