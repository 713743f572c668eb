package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
	"github.com/mcgareyconsulting/milehigh-sub001/internal/store"
)

// runCLI invokes the full CLI against a working directory, the way main
// does, and returns exit code plus captured output.
func runCLI(t *testing.T, workDir string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	env := map[string]string{"HOME": workDir}

	argv := append([]string{"subboard", "-C", workDir}, args...)

	code := Run(context.Background(), strings.NewReader(""), &stdout, &stderr, argv, env)

	return code, stdout.String(), stderr.String()
}

// seedStore writes items into the default store directory under workDir
// and releases the store lock again so the CLI can take it.
func seedStore(t *testing.T, workDir string, items ...board.WorkItem) {
	t.Helper()

	dir := filepath.Join(workDir, ".subboard")

	s, err := store.Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("open seed store: %v", err)
	}

	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			t.Fatalf("close seed store: %v", closeErr)
		}
	}()

	for _, item := range items {
		if putErr := s.Put(context.Background(), item); putErr != nil {
			t.Fatalf("seed %s: %v", item.ID, putErr)
		}
	}
}

// orderInStore reads one item's persisted order key back out.
func orderInStore(t *testing.T, workDir, id string) board.OrderKey {
	t.Helper()

	dir := filepath.Join(workDir, ".subboard")

	s, err := store.Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	defer func() { _ = s.Close() }()

	snap, err := s.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	for _, item := range snap.Items {
		if item.ID == id {
			return item.Order
		}
	}

	t.Fatalf("item %s not in store", id)

	return board.NullOrder
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func assertNotContains(t *testing.T, output string, rejects ...string) {
	t.Helper()

	for _, reject := range rejects {
		if strings.Contains(output, reject) {
			t.Errorf("output should not contain %q:\n%s", reject, output)
		}
	}
}
