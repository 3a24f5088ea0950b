package services

import (
	"fmt"

	"github.com/google/uuid"
)

// FailureKind classifies why an order placement was rejected.
type FailureKind string

const (
	// KindInvalidRequest: the request was malformed and no transaction
	// was opened.
	KindInvalidRequest FailureKind = "invalid_request"
	// KindNotFound: a referenced item does not exist; the whole
	// placement was rolled back.
	KindNotFound FailureKind = "not_found"
	// KindInsufficientStock: a line asked for more units than are
	// sellable; the whole placement was rolled back.
	KindInsufficientStock FailureKind = "insufficient_stock"
	// KindConflictAborted: the database detected a serialization
	// conflict with a concurrent placement. Nothing was applied; the
	// caller may resubmit.
	KindConflictAborted FailureKind = "conflict_aborted"
)

// PlacementError is the structured failure surfaced by PlaceOrder.
// ItemID identifies the offending line where one applies; it is
// uuid.Nil for request-level and conflict failures.
type PlacementError struct {
	Kind   FailureKind
	ItemID uuid.UUID
	Reason string
}

func (e *PlacementError) Error() string {
	if e.ItemID != uuid.Nil {
		return fmt.Sprintf("order placement failed (%s): item %s: %s", e.Kind, e.ItemID, e.Reason)
	}
	return fmt.Sprintf("order placement failed (%s): %s", e.Kind, e.Reason)
}

func invalidRequest(reason string) *PlacementError {
	return &PlacementError{Kind: KindInvalidRequest, Reason: reason}
}

func itemNotFound(itemID uuid.UUID) *PlacementError {
	return &PlacementError{Kind: KindNotFound, ItemID: itemID, Reason: "item does not exist"}
}

func insufficientStock(itemID uuid.UUID, reason string) *PlacementError {
	return &PlacementError{Kind: KindInsufficientStock, ItemID: itemID, Reason: reason}
}

func conflictAborted(err error) *PlacementError {
	return &PlacementError{Kind: KindConflictAborted, Reason: err.Error()}
}
