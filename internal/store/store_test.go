package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := s.Close(); closeErr != nil {
			t.Errorf("Close: %v", closeErr)
		}
	})

	return s
}

func putItems(t *testing.T, s *Store, items ...board.WorkItem) {
	t.Helper()

	for _, item := range items {
		if err := s.Put(context.Background(), item); err != nil {
			t.Fatalf("Put(%s): %v", item.ID, err)
		}
	}
}

func fetchOrder(t *testing.T, s *Store, id string) board.OrderKey {
	t.Helper()

	snap, err := s.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}

	for _, item := range snap.Items {
		if item.ID == id {
			return item.Order
		}
	}

	t.Fatalf("item %s not found", id)

	return board.NullOrder
}

func TestPutAndFetchRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s,
		board.WorkItem{ID: "a", Assignee: "Alice", Project: "Hangar", Order: board.Order(1)},
		board.WorkItem{ID: "b", Assignee: "Bob"},
	)

	snap, err := s.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}

	if len(snap.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(snap.Items))
	}

	if snap.AsOf.IsZero() {
		t.Error("AsOf should be set")
	}

	if got := fetchOrder(t, s, "a"); got != board.Order(1) {
		t.Errorf("a order = %v, want 1", got)
	}

	if got := fetchOrder(t, s, "b"); got != board.NullOrder {
		t.Errorf("b order = %v, want null", got)
	}
}

func TestPutDuplicateID(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s, board.WorkItem{ID: "a", Assignee: "Alice"})

	err := s.Put(context.Background(), board.WorkItem{ID: "a", Assignee: "Bob"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Put duplicate = %v, want ErrDuplicateID", err)
	}
}

func TestSetOrderKeyRejectsBadValuesBeforeWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  board.OrderKey
	}{
		{name: "zero", key: board.Order(0)},
		{name: "negative regular", key: board.Order(-5)},
		{name: "negative urgent", key: board.Order(-0.9)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := openTestStore(t)

			putItems(t, s,
				board.WorkItem{ID: "u", Assignee: "Alice", Order: board.Order(0.9)},
				board.WorkItem{ID: "a", Assignee: "Alice", Order: board.Order(1)},
			)

			err := s.SetOrderKey(context.Background(), "a", tt.key)

			var verr *board.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("SetOrderKey(%v) = %v, want ValidationError", tt.key, err)
			}

			if got := fetchOrder(t, s, "a"); got != board.Order(1) {
				t.Errorf("order changed to %v after rejected write", got)
			}
		})
	}
}

func TestSetOrderKeyUnknownItem(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	err := s.SetOrderKey(context.Background(), "ghost", board.Order(1))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetOrderKey(ghost) = %v, want ErrNotFound", err)
	}
}

// An upward insert: the written item takes rank 1 and the displaced
// sibling renumbers to 2. Null keys stay null.
func TestSetOrderKeyRenumbersUpward(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s,
		board.WorkItem{ID: "A", Assignee: "Alice", Order: board.Order(1)},
		board.WorkItem{ID: "B", Assignee: "Alice", Order: board.Order(2)},
		board.WorkItem{ID: "C", Assignee: "Alice"},
	)

	if err := s.SetOrderKey(context.Background(), "B", board.Order(1)); err != nil {
		t.Fatalf("SetOrderKey: %v", err)
	}

	if got := fetchOrder(t, s, "B"); got != board.Order(1) {
		t.Errorf("B = %v, want 1", got)
	}

	if got := fetchOrder(t, s, "A"); got != board.Order(2) {
		t.Errorf("A = %v, want 2", got)
	}

	if got := fetchOrder(t, s, "C"); got != board.NullOrder {
		t.Errorf("C = %v, want null", got)
	}
}

// A downward insert: rank 3 lands after the old rank-2 item, and the
// urgent prefix never moves.
func TestSetOrderKeyRenumbersDownward(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s,
		board.WorkItem{ID: "U", Assignee: "Alice", Order: board.Order(0.9)},
		board.WorkItem{ID: "A", Assignee: "Alice", Order: board.Order(1)},
		board.WorkItem{ID: "B", Assignee: "Alice", Order: board.Order(2)},
		board.WorkItem{ID: "C", Assignee: "Alice", Order: board.Order(3)},
	)

	if err := s.SetOrderKey(context.Background(), "A", board.Order(3)); err != nil {
		t.Fatalf("SetOrderKey: %v", err)
	}

	wantOrders := map[string]board.OrderKey{
		"U": board.Order(0.9),
		"B": board.Order(1),
		"C": board.Order(2),
		"A": board.Order(3),
	}

	for id, want := range wantOrders {
		if got := fetchOrder(t, s, id); got != want {
			t.Errorf("%s = %v, want %v", id, got, want)
		}
	}
}

// Urgent writes do not enter the regular sequence; the remaining regular
// slots still repack tight.
func TestSetOrderKeyUrgentWriteRepacksRegulars(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s,
		board.WorkItem{ID: "A", Assignee: "Alice", Order: board.Order(1)},
		board.WorkItem{ID: "B", Assignee: "Alice", Order: board.Order(2)},
		board.WorkItem{ID: "C", Assignee: "Alice", Order: board.Order(3)},
	)

	if err := s.SetOrderKey(context.Background(), "B", board.Order(0.9)); err != nil {
		t.Fatalf("SetOrderKey: %v", err)
	}

	if got := fetchOrder(t, s, "B"); got != board.Order(0.9) {
		t.Errorf("B = %v, want 0.9", got)
	}

	if got := fetchOrder(t, s, "A"); got != board.Order(1) {
		t.Errorf("A = %v, want 1", got)
	}

	if got := fetchOrder(t, s, "C"); got != board.Order(2) {
		t.Errorf("C = %v, want 2", got)
	}
}

func TestSetOrderKeyClearRepacksRegulars(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s,
		board.WorkItem{ID: "A", Assignee: "Alice", Order: board.Order(1)},
		board.WorkItem{ID: "B", Assignee: "Alice", Order: board.Order(2)},
		board.WorkItem{ID: "C", Assignee: "Alice", Order: board.Order(3)},
	)

	if err := s.SetOrderKey(context.Background(), "A", board.NullOrder); err != nil {
		t.Fatalf("SetOrderKey: %v", err)
	}

	if got := fetchOrder(t, s, "A"); got != board.NullOrder {
		t.Errorf("A = %v, want null", got)
	}

	if got := fetchOrder(t, s, "B"); got != board.Order(1) {
		t.Errorf("B = %v, want 1", got)
	}

	if got := fetchOrder(t, s, "C"); got != board.Order(2) {
		t.Errorf("C = %v, want 2", got)
	}
}

// The renumber is group-scoped: other assignees' sequences never move.
func TestSetOrderKeyScopedToGroup(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	putItems(t, s,
		board.WorkItem{ID: "a1", Assignee: "Alice", Order: board.Order(1)},
		board.WorkItem{ID: "a2", Assignee: "Alice", Order: board.Order(2)},
		board.WorkItem{ID: "b1", Assignee: "Bob", Order: board.Order(1)},
		board.WorkItem{ID: "b2", Assignee: "Bob", Order: board.Order(2)},
	)

	if err := s.SetOrderKey(context.Background(), "a2", board.Order(1)); err != nil {
		t.Fatalf("SetOrderKey: %v", err)
	}

	if got := fetchOrder(t, s, "b1"); got != board.Order(1) {
		t.Errorf("b1 = %v, want 1", got)
	}

	if got := fetchOrder(t, s, "b2"); got != board.Order(2) {
		t.Errorf("b2 = %v, want 2", got)
	}
}

func TestImportJSONResolvesAliases(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	doc := []byte(`[
		// machine field names
		{"id": "r1", "current_assignee": "Alice", "job_number": "24-101", "order_key": 1},
		// display field names
		{"Item_ID": "r2", "Currently With": "Bob", "Job #": "24-102", "Priority_Order": "0.9"},
		// junk order value ingests as unordered
		{"id": "r3", "assignee": "Cam", "order": "soon"},
	]`)

	count, err := s.ImportJSON(context.Background(), doc)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if count != 3 {
		t.Fatalf("imported %d rows, want 3", count)
	}

	snap, err := s.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("FetchItems: %v", err)
	}

	byID := make(map[string]board.WorkItem, len(snap.Items))
	for _, item := range snap.Items {
		byID[item.ID] = item
	}

	if byID["r1"].Assignee != "Alice" || byID["r1"].JobNumber != "24-101" {
		t.Errorf("r1 not normalized: %+v", byID["r1"])
	}

	if byID["r2"].Assignee != "Bob" || byID["r2"].JobNumber != "24-102" {
		t.Errorf("r2 aliases not resolved: %+v", byID["r2"])
	}

	if byID["r2"].Order != board.Order(0.9) {
		t.Errorf("r2 order = %v, want 0.9", byID["r2"].Order)
	}

	if byID["r3"].Order != board.NullOrder {
		t.Errorf("r3 order = %v, want null", byID["r3"].Order)
	}
}

func TestImportJSONMissingID(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	_, err := s.ImportJSON(context.Background(), []byte(`[{"assignee": "Alice"}]`))
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("ImportJSON = %v, want ErrMissingID", err)
	}
}

func TestOpenLockedDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	_, err = Open(context.Background(), dir)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second Open = %v, want ErrLocked", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "")
	if !errors.Is(err, ErrPathEmpty) {
		t.Fatalf("Open(\"\") = %v, want ErrPathEmpty", err)
	}
}
