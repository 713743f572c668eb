package board

import (
	"math"
)

// Mutation is one computed order-key assignment, ready to hand to the
// gateway. A drop gesture produces at most one mutation; the store owns
// renumbering the remaining regular slots afterwards.
type Mutation struct {
	ItemID string
	Key    OrderKey
}

// urgencyLadder is the fixed set of urgent slots for top-of-group
// insertion, most urgent first. 0.9 is handed out first so repeated
// promotions keep headroom above the newest one instead of shrinking
// toward zero indefinitely.
var urgencyLadder = [...]float64{0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}

// ladderFallback is assigned when every urgent slot is taken. The store's
// renumber reconciles the collision with the existing rank-1 item.
const ladderFallback = 1.0

// PlanMove computes the single order-key assignment realizing a drag of
// draggedID onto targetID: a 1-based rank among the group's regular slots,
// inserting before the target on an upward drag and after it on a downward
// one. Dropping into the dedicated zone above the group head is a separate
// gesture (PlanTop). Both items must resolve in the snapshot and share one
// ordering group; joint-assignee items are never reorderable. Rejections
// come back as ErrItemNotFound, ErrGroupMismatch, ErrNotReorderable or
// ErrNoGesture and carry no mutation; callers treat them as a silent abort
// of the gesture.
func PlanMove(items []WorkItem, draggedID, targetID string) (Mutation, error) {
	dragged, ok := findItem(items, draggedID)
	if !ok {
		return Mutation{}, ErrItemNotFound
	}

	target, ok := findItem(items, targetID)
	if !ok {
		return Mutation{}, ErrItemNotFound
	}

	if draggedID == targetID {
		return Mutation{}, ErrNoGesture
	}

	if !Reorderable(dragged) || !Reorderable(target) {
		return Mutation{}, ErrNotReorderable
	}

	if GroupOf(dragged) != GroupOf(target) {
		return Mutation{}, ErrGroupMismatch
	}

	sorted := SortedGroup(groupItems(items, GroupOf(dragged)))

	oldPos := indexOf(sorted, draggedID)
	targetPos := indexOf(sorted, targetID)

	key := rankInsertKey(sorted, oldPos, targetPos)

	return Mutation{ItemID: draggedID, Key: key}, nil
}

// PlanTop computes the promote-to-top assignment for dropping an item into
// the zone above its group head (the "bump" affordance). The ladder is
// evaluated against the rest of the item's group; in a group with no other
// urgent items the result is 0.9. An item already sitting first with a
// non-null key has nothing to gain and the gesture aborts with
// ErrNoGesture.
func PlanTop(items []WorkItem, itemID string) (Mutation, error) {
	item, ok := findItem(items, itemID)
	if !ok {
		return Mutation{}, ErrItemNotFound
	}

	if !Reorderable(item) {
		return Mutation{}, ErrNotReorderable
	}

	sorted := SortedGroup(groupItems(items, GroupOf(item)))

	if len(sorted) > 0 && sorted[0].ID == itemID && item.Order.Valid {
		return Mutation{}, ErrNoGesture
	}

	return Mutation{ItemID: itemID, Key: topInsertKey(sorted, itemID)}, nil
}

// topInsertKey picks the urgent slot for a promote-to-top insertion.
// The dragged item's own key is ignored: it is about to be overwritten, so
// any ladder slot it holds counts as free. If the group head already sits
// at a regular slot there are no urgent items and 0.9 is free by
// construction. When all nine slots are taken the key falls back to 1.0
// and the store-side renumber reconciles.
func topInsertKey(sorted []WorkItem, draggedID string) OrderKey {
	occupied := make(map[float64]bool, len(urgencyLadder))

	for _, item := range sorted {
		if item.ID == draggedID || item.Order.Classify() != Urgent {
			continue
		}

		slot := math.Round(item.Order.Value*10) / 10

		for _, rung := range urgencyLadder {
			if slot == rung {
				occupied[rung] = true

				break
			}
		}
	}

	for _, rung := range urgencyLadder {
		if !occupied[rung] {
			return Order(rung)
		}
	}

	return Order(ladderFallback)
}

// rankInsertKey computes the 1-based rank among regular slots for a move
// within (or to the end of) the group. Urgent-slot and null-key items never
// shift: the key only counts regular items ahead of the target, and the
// store repacks regular slots to a tight 1..N after the write.
//
// Direction decides the insert side: a downward drag (old position above
// the target) lands after the target when the target itself holds a
// regular slot; an upward drag lands before it.
func rankInsertKey(sorted []WorkItem, oldPos, targetPos int) OrderKey {
	target := sorted[targetPos]

	regularBefore := 0

	for pos, item := range sorted {
		if pos >= targetPos || pos == oldPos {
			continue
		}

		if item.Order.Classify() == Regular {
			regularBefore++
		}
	}

	offset := 0
	if oldPos < targetPos && target.Order.Classify() == Regular {
		offset = 1
	}

	return Order(float64(regularBefore + offset + 1))
}

func findItem(items []WorkItem, id string) (WorkItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}

	return WorkItem{}, false
}

func groupItems(items []WorkItem, groupKey string) []WorkItem {
	out := make([]WorkItem, 0, len(items))

	for _, item := range items {
		if GroupOf(item) == groupKey {
			out = append(out, item)
		}
	}

	return out
}

func indexOf(items []WorkItem, id string) int {
	for pos, item := range items {
		if item.ID == id {
			return pos
		}
	}

	return -1
}
