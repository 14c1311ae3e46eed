// internal/service/ordering.go
//
// Ordered-collection primitives shared by the set and set group paths. Two
// distinct operations, deliberately kept apart:
//
//   - nextOrder: append position for an insert. Monotonic max+1; after
//     deletions the sequence may have gaps, which is fine because siblings
//     are always read sorted by order.
//   - reorder (validateReorder + per-repo renumber loop in the services):
//     full renumber to 0..n-1. The only operation that guarantees
//     contiguity.
package service

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// nextOrder returns the order value for a newly appended sibling:
// max(existing)+1, or 0 for the first one.
func nextOrder(orders []int) int {
	next := 0
	for _, o := range orders {
		if o >= next {
			next = o + 1
		}
	}
	return next
}

// validateReorder checks a requested ordering against the sibling scope it
// applies to: every requested id must belong to the scope and no id may
// appear twice. Nothing is written when this fails; callers renumber only
// after it passes, inside the surrounding transaction.
func validateReorder(siblingIDs, requested []primitive.ObjectID) error {
	if len(requested) == 0 {
		return fmt.Errorf("reorder requires at least one id: %w", ErrValidationFailed)
	}
	inScope := make(map[primitive.ObjectID]bool, len(siblingIDs))
	for _, id := range siblingIDs {
		inScope[id] = true
	}
	seen := make(map[primitive.ObjectID]bool, len(requested))
	for _, id := range requested {
		if !inScope[id] {
			return fmt.Errorf("id %s is not part of the reordered scope: %w", id.Hex(), ErrValidationFailed)
		}
		if seen[id] {
			return fmt.Errorf("id %s appears twice in reorder list: %w", id.Hex(), ErrValidationFailed)
		}
		seen[id] = true
	}
	return nil
}
