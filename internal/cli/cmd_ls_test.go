package cli

import (
	"strings"
	"testing"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
)

func lsFixture() []board.WorkItem {
	return []board.WorkItem{
		{ID: "s1", Assignee: "Alice", Manager: "Dan", Project: "Hangar", Stage: "Fab", JobNumber: "24-101", Title: "Anchor plan", Order: board.Order(1)},
		{ID: "s2", Assignee: "Alice", Manager: "Dan", Project: "Hangar", Stage: "Detail", JobNumber: "24-102", Title: "Beam layout", Order: board.Order(2)},
		{ID: "s3", Assignee: "Bob", Manager: "Eve", Project: "Depot", Stage: "Fab", JobNumber: "24-200", Title: "Stair stringers", Order: board.Order(0.9)},
		{ID: "s4", Assignee: "Alice, Bob", Manager: "Eve", Project: "Depot", Stage: "Review", JobNumber: "24-300", Title: "Joint package"},
	}
}

func TestLsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantExit   int
		wantStdout []string
		notStdout  []string
		wantStderr []string
	}{
		{
			name:       "lists all items",
			args:       []string{"ls"},
			wantExit:   0,
			wantStdout: []string{"s1", "s2", "s3", "s4", "ASSIGNEE", "ORDER"},
		},
		{
			name:       "filter by assignee",
			args:       []string{"ls", "--assignee=Alice"},
			wantExit:   0,
			wantStdout: []string{"s1", "s2", "s4"},
			notStdout:  []string{"s3"},
		},
		{
			name:       "assignee filter matches joint members",
			args:       []string{"ls", "--assignee=Bob"},
			wantExit:   0,
			wantStdout: []string{"s3", "s4"},
			notStdout:  []string{"s1", "s2"},
		},
		{
			name:       "filter by manager and stage ANDs",
			args:       []string{"ls", "--manager=Eve", "--stage=Fab"},
			wantExit:   0,
			wantStdout: []string{"s3"},
			notStdout:  []string{"s1", "s2", "s4"},
		},
		{
			name:       "search matches job numbers",
			args:       []string{"ls", "--search=24-1"},
			wantExit:   0,
			wantStdout: []string{"s1", "s2"},
			notStdout:  []string{"s3", "s4"},
		},
		{
			name:       "unknown sort column fails",
			args:       []string{"ls", "--sort=bogus"},
			wantExit:   1,
			wantStderr: []string{"unknown sort column"},
		},
		{
			name:       "negative limit fails",
			args:       []string{"ls", "--limit=-1"},
			wantExit:   1,
			wantStderr: []string{"--limit must be non-negative"},
		},
		{
			name:       "limit windows output",
			args:       []string{"ls", "--limit=1"},
			wantExit:   0,
			wantStdout: []string{"s1"},
			notStdout:  []string{"s2", "s3"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			seedStore(t, dir, lsFixture()...)

			code, stdout, stderr := runCLI(t, dir, tt.args...)

			if code != tt.wantExit {
				t.Errorf("exit = %d, want %d\nstderr: %s", code, tt.wantExit, stderr)
			}

			assertContains(t, stdout, tt.wantStdout...)
			assertNotContains(t, stdout, tt.notStdout...)
			assertContains(t, stderr, tt.wantStderr...)
		})
	}
}

// Default display order: Alice's regular slots, then Bob's urgent item,
// then the joint group last.
func TestLsDefaultOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedStore(t, dir, lsFixture()...)

	code, stdout, stderr := runCLI(t, dir, "ls")
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}

	order := []string{"s1", "s2", "s3", "s4"}

	last := -1

	for _, id := range order {
		at := strings.Index(stdout, id)
		if at < 0 {
			t.Fatalf("missing %s in output:\n%s", id, stdout)
		}

		if at < last {
			t.Errorf("%s out of order in output:\n%s", id, stdout)
		}

		last = at
	}
}

func TestLsColumnSortDescending(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedStore(t, dir, lsFixture()...)

	code, stdout, _ := runCLI(t, dir, "ls", "--sort=job", "--desc")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}

	if strings.Index(stdout, "24-300") > strings.Index(stdout, "24-101") {
		t.Errorf("descending job sort not applied:\n%s", stdout)
	}
}

func TestLsEmptyBoard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	code, stdout, stderr := runCLI(t, dir, "ls")
	if code != 0 {
		t.Fatalf("exit = %d, stderr: %s", code, stderr)
	}

	if strings.TrimSpace(stdout) != "" {
		t.Errorf("empty board should print nothing, got:\n%s", stdout)
	}
}
