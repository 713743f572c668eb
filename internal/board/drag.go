package board

import (
	"context"
	"errors"
)

// DragPhase is the phase of a drag gesture.
type DragPhase int

// Drag gesture phases.
const (
	PhaseIdle DragPhase = iota
	PhaseDragging
	PhaseHovering
)

// DragState is the explicit state of the drag gesture machine:
//
//	Idle -> Dragging(source) -> Hovering(source, target) -> Idle
//
// Transitions are pure functions; an invalid transition leaves the state
// unchanged. TargetTop marks the dedicated drop zone above the source's
// group head, which promotes into an urgent slot instead of a rank move.
type DragState struct {
	Phase     DragPhase
	SourceID  string
	TargetID  string
	TargetTop bool
}

// Begin starts a gesture from Idle.
func (s DragState) Begin(sourceID string) DragState {
	if s.Phase != PhaseIdle || sourceID == "" {
		return s
	}

	return DragState{Phase: PhaseDragging, SourceID: sourceID}
}

// Hover records the item currently under the drag.
func (s DragState) Hover(targetID string) DragState {
	if s.Phase == PhaseIdle || targetID == "" {
		return s
	}

	return DragState{Phase: PhaseHovering, SourceID: s.SourceID, TargetID: targetID}
}

// HoverTop records the drop zone above the source's group head.
func (s DragState) HoverTop() DragState {
	if s.Phase == PhaseIdle {
		return s
	}

	return DragState{Phase: PhaseHovering, SourceID: s.SourceID, TargetTop: true}
}

// Cancel aborts the gesture with no mutation.
func (s DragState) Cancel() DragState {
	return DragState{}
}

// silentReject reports the planner rejections that abort a gesture without
// surfacing an error: cross-group drops, unresolvable items, joint-assignee
// items and degenerate gestures all reset the drag state and nothing else.
func silentReject(err error) bool {
	return errors.Is(err, ErrGroupMismatch) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrNotReorderable) ||
		errors.Is(err, ErrNoGesture)
}

// Controller drives the board against a store: it owns the current
// snapshot, the drag gesture state and the in-memory filter/sort state,
// and funnels every order mutation through the gateway followed by an
// awaited re-fetch. All computation over the snapshot is pure; the
// controller is single-threaded by design, matching the event-driven UI
// it models — one gesture completes (success or failure) before the next
// one starts.
type Controller struct {
	store   Store
	snap    Snapshot
	drag    DragState
	filters FilterState
	sorting SortState
}

// NewController returns a controller with an empty snapshot. Call Refresh
// before reading items.
func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Refresh replaces the snapshot with a fresh fetch from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	snap, err := c.store.FetchItems(ctx)
	if err != nil {
		return err
	}

	c.snap = snap

	return nil
}

// Snapshot returns the last fetched snapshot.
func (c *Controller) Snapshot() Snapshot {
	return c.snap
}

// Drag returns the current gesture state.
func (c *Controller) Drag() DragState {
	return c.drag
}

// Filters returns the active filter state.
func (c *Controller) Filters() FilterState {
	return c.filters
}

// SetFilters replaces the filter state.
func (c *Controller) SetFilters(state FilterState) {
	c.filters = state
}

// Sorting returns the active column sort state.
func (c *Controller) Sorting() SortState {
	return c.sorting
}

// ToggleSort advances the sort cycle for a column.
func (c *Controller) ToggleSort(col Column) {
	c.sorting = c.sorting.Toggle(col)
}

// SetSorting replaces the column sort state directly.
func (c *Controller) SetSorting(state SortState) {
	c.sorting = state
}

// Items runs the display pipeline over the current snapshot.
func (c *Controller) Items() []WorkItem {
	return Display(c.snap.Items, c.filters, c.sorting)
}

// BeginDrag starts a gesture for an item. Joint-assignee items are not
// draggable and leave the state idle.
func (c *Controller) BeginDrag(sourceID string) {
	item, ok := findItem(c.snap.Items, sourceID)
	if !ok || !Reorderable(item) {
		return
	}

	c.drag = c.drag.Begin(sourceID)
}

// HoverOver records the current drop target.
func (c *Controller) HoverOver(targetID string) {
	c.drag = c.drag.Hover(targetID)
}

// HoverTop records the promote-to-top drop zone as the target.
func (c *Controller) HoverTop() {
	c.drag = c.drag.HoverTop()
}

// CancelDrag aborts the gesture with no mutation.
func (c *Controller) CancelDrag() {
	c.drag = c.drag.Cancel()
}

// Drop completes the gesture: plan, persist through the gateway, then an
// awaited re-fetch. The drag state is cleared whatever the outcome.
// Planner rejections are silent no-ops. A failed write surfaces as
// PersistenceError after a best-effort refresh so the board re-syncs to
// the true external state.
func (c *Controller) Drop(ctx context.Context) error {
	gesture := c.drag
	c.drag = DragState{}

	if gesture.Phase != PhaseHovering {
		return nil
	}

	var (
		mutation Mutation
		err      error
	)

	if gesture.TargetTop {
		mutation, err = PlanTop(c.snap.Items, gesture.SourceID)
	} else {
		mutation, err = PlanMove(c.snap.Items, gesture.SourceID, gesture.TargetID)
	}

	if err != nil {
		if silentReject(err) {
			return nil
		}

		return err
	}

	return c.submit(ctx, mutation)
}

// Move performs a full drag-onto-item gesture in one call.
func (c *Controller) Move(ctx context.Context, draggedID, targetID string) error {
	c.BeginDrag(draggedID)
	c.HoverOver(targetID)

	return c.Drop(ctx)
}

// Bump performs a full promote-to-top gesture in one call.
func (c *Controller) Bump(ctx context.Context, itemID string) error {
	c.BeginDrag(itemID)
	c.HoverTop()

	return c.Drop(ctx)
}

// SetOrder is the explicit order-field edit: the raw value is normalized
// (dash and empty clear the field), validated locally, persisted, and the
// snapshot re-fetched. Zero and non-numeric input fail with
// ValidationError before any store call.
func (c *Controller) SetOrder(ctx context.Context, itemID, raw string) error {
	if _, ok := findItem(c.snap.Items, itemID); !ok {
		return ErrItemNotFound
	}

	key, err := NormalizeOrderValue(raw)
	if err != nil {
		return err
	}

	return c.submit(ctx, Mutation{ItemID: itemID, Key: key})
}

func (c *Controller) submit(ctx context.Context, mutation Mutation) error {
	err := c.store.SetOrderKey(ctx, mutation.ItemID, mutation.Key)
	if err != nil {
		perr := &PersistenceError{ItemID: mutation.ItemID, Err: err}

		// Best effort: re-sync to whatever the store now holds.
		_ = c.Refresh(ctx)

		return perr
	}

	return c.Refresh(ctx)
}
