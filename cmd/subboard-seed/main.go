// Package main provides subboard-seed, a tool that populates a demo board
// for trying out the dashboard and exercising the reorder paths.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
	"github.com/mcgareyconsulting/milehigh-sub001/internal/store"
)

var assignees = []string{"Alice", "Bob", "Cam", "Dana"}

var stages = []string{"Detail", "Fab", "Submit", "Review"}

func main() {
	dir := flag.String("dir", ".subboard", "store directory to seed")
	perGroup := flag.Int("per-group", 5, "items per assignee group")
	flag.Parse()

	err := seed(context.Background(), *dir, *perGroup)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, dir string, perGroup int) error {
	s, err := store.Open(ctx, dir)
	if err != nil {
		return err
	}
	defer s.Close()

	now := time.Now().UTC()
	total := 0

	for g, assignee := range assignees {
		for n := 1; n <= perGroup; n++ {
			item := board.WorkItem{
				ID:            fmt.Sprintf("sub-%03d", g*perGroup+n),
				Assignee:      assignee,
				Manager:       "Dan",
				Project:       "Hangar 7",
				Stage:         stages[n%len(stages)],
				JobNumber:     fmt.Sprintf("24-%03d", 100+g*perGroup+n),
				ReleaseNumber: fmt.Sprintf("R%d", n),
				Title:         fmt.Sprintf("%s release %d", assignee, n),
				Status:        "active",
				UpdatedAt:     now.Add(-time.Duration(n) * time.Hour),
			}

			// Leave the last item in each group unordered.
			if n < perGroup {
				item.Order = board.Order(float64(n))
			}

			err = s.Upsert(ctx, item)
			if err != nil {
				return err
			}

			total++
		}
	}

	// One joint assignment per board; joint items are never reorderable.
	joint := board.WorkItem{
		ID:        "sub-900",
		Assignee:  "Alice, Bob",
		Manager:   "Eve",
		Project:   "Depot",
		Stage:     "Review",
		JobNumber: "24-900",
		Title:     "Joint submittal package",
		Status:    "active",
		UpdatedAt: now,
	}

	err = s.Upsert(ctx, joint)
	if err != nil {
		return err
	}

	total++

	fmt.Printf("seeded %d items into %s\n", total, dir)

	return nil
}
