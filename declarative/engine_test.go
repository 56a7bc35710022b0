package declarative

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dogctl/faults"
	"dogctl/resource"
)

type fakeOperations struct {
	created []resource.Document
	updated map[string]resource.Document
	live    map[string]resource.Document
	nextID  string
	getErr  error
}

func newFakeOperations() *fakeOperations {
	return &fakeOperations{
		updated: map[string]resource.Document{},
		live:    map[string]resource.Document{},
		nextID:  "generated-id",
	}
}

func (f *fakeOperations) table(kind resource.Kind) map[resource.Kind]KindOperations {
	return map[resource.Kind]KindOperations{
		kind: {
			Get: func(ctx context.Context, id string) (resource.Document, error) {
				if f.getErr != nil {
					return nil, f.getErr
				}
				doc, found := f.live[id]
				if !found {
					return nil, faults.NewTypedError(faults.NotFoundError, "Resource not found: "+id, nil)
				}
				return doc, nil
			},
			Create: func(ctx context.Context, body resource.Document) (resource.Document, error) {
				f.created = append(f.created, body)
				echoed := resource.Document{"id": f.nextID}
				for key, value := range body {
					echoed[key] = value
				}
				return echoed, nil
			},
			Update: func(ctx context.Context, id string, body resource.Document) (resource.Document, error) {
				f.updated[id] = body
				echoed := resource.Document{"id": id}
				for key, value := range body {
					echoed[key] = value
				}
				return echoed, nil
			},
		},
	}
}

func TestApplyCreatesWhenIDAbsent(t *testing.T) {
	t.Parallel()

	fake := newFakeOperations()
	engine := NewEngine(fake.table(resource.KindMonitor))

	result, err := engine.Apply(context.Background(), resource.Document{
		"name":  "CPU Alert",
		"query": "avg:system.cpu{*} > 90",
	}, false)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if result.Action != ActionCreate {
		t.Fatalf("action = %s, want create", result.Action)
	}
	if result.ID != "generated-id" {
		t.Fatalf("result ID = %q", result.ID)
	}
	if len(fake.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(fake.created))
	}
}

func TestApplyUpdatesWhenIDPresentAndStripsID(t *testing.T) {
	t.Parallel()

	fake := newFakeOperations()
	engine := NewEngine(fake.table(resource.KindMonitor))

	result, err := engine.Apply(context.Background(), resource.Document{
		"id":    12345,
		"name":  "CPU Alert",
		"query": "avg:system.cpu{*} > 90",
	}, false)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if result.Action != ActionUpdate || result.ID != "12345" {
		t.Fatalf("unexpected result %+v", result)
	}

	body, found := fake.updated["12345"]
	if !found {
		t.Fatalf("no update recorded for 12345")
	}
	if _, hasID := body["id"]; hasID {
		t.Fatalf("update body must not carry the id, got %v", body)
	}
}

func TestApplyDryRunIssuesNoRemoteCalls(t *testing.T) {
	t.Parallel()

	fake := newFakeOperations()
	engine := NewEngine(fake.table(resource.KindMonitor))

	for _, doc := range []resource.Document{
		{"query": "avg:system.cpu{*} > 90"},
		{"id": 1, "query": "avg:system.cpu{*} > 90"},
	} {
		result, err := engine.Apply(context.Background(), doc, true)
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if !result.DryRun {
			t.Fatalf("result must be flagged as dry run")
		}
	}
	if len(fake.created) != 0 || len(fake.updated) != 0 {
		t.Fatalf("dry run reached the remote: %d creates, %d updates", len(fake.created), len(fake.updated))
	}
}

func TestApplyDryRunNeedsNoOperations(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil)

	result, err := engine.Apply(context.Background(), resource.Document{"query": "avg:system.cpu{*} > 90"}, true)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if result.Kind != resource.KindMonitor || result.Action != ActionCreate || !result.DryRun {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestApplyRejectsUndetectableDocument(t *testing.T) {
	t.Parallel()

	engine := NewEngine(newFakeOperations().table(resource.KindMonitor))

	_, err := engine.Apply(context.Background(), resource.Document{"name": "mystery"}, false)
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Cannot detect resource type") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func writeResourceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestApplyPathDirectoryWithoutRecursiveFails(t *testing.T) {
	t.Parallel()

	engine := NewEngine(newFakeOperations().table(resource.KindMonitor))

	_, err := engine.ApplyPath(context.Background(), t.TempDir(), false, false)
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyPathEmptyDirectoryFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeResourceFile(t, dir, "notes.txt", "not a resource")

	engine := NewEngine(newFakeOperations().table(resource.KindMonitor))
	_, err := engine.ApplyPath(context.Background(), dir, true, false)
	if err == nil || !strings.Contains(err.Error(), "No JSON files found") {
		t.Fatalf("expected empty-directory error, got %v", err)
	}
}

func TestApplyPathRecursiveIsolatesFailuresAndSortsFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeResourceFile(t, dir, "b-monitor.json", `{"query": "avg:system.cpu{*} > 90"}`)
	writeResourceFile(t, dir, "c-broken.json", `{not json`)
	writeResourceFile(t, dir, "a-monitor.json", `{"query": "avg:system.load{*} > 4"}`)
	writeResourceFile(t, dir, "ignored.yaml", "query: skipped")

	fake := newFakeOperations()
	engine := NewEngine(fake.table(resource.KindMonitor))

	outcomes, err := engine.ApplyPath(context.Background(), dir, true, false)
	if err != nil {
		t.Fatalf("ApplyPath() error: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}

	if filepath.Base(outcomes[0].Path) != "a-monitor.json" || filepath.Base(outcomes[2].Path) != "c-broken.json" {
		t.Fatalf("outcomes out of order: %v", outcomes)
	}
	if outcomes[0].Err != nil || outcomes[1].Err != nil {
		t.Fatalf("valid files must succeed: %v %v", outcomes[0].Err, outcomes[1].Err)
	}
	if outcomes[2].Err == nil {
		t.Fatalf("broken file must fail without aborting the batch")
	}
	if len(fake.created) != 2 {
		t.Fatalf("expected 2 create calls, got %d", len(fake.created))
	}
}

func TestDiffRequiresID(t *testing.T) {
	t.Parallel()

	engine := NewEngine(newFakeOperations().table(resource.KindMonitor))

	for _, doc := range []resource.Document{
		{"query": "avg:system.cpu{*} > 90"},
		{"message": "no detection signal either"},
	} {
		_, err := engine.Diff(context.Background(), doc, "monitor.json")
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !strings.Contains(err.Error(), "no 'id' field") {
			t.Fatalf("missing id must be reported first, got %v", err)
		}
	}
}

func TestDiffReportsNoDifferences(t *testing.T) {
	t.Parallel()

	fake := newFakeOperations()
	fake.live["12345"] = resource.Document{
		"id":    12345,
		"name":  "CPU Alert",
		"query": "avg:system.cpu{*} > 90",
	}
	engine := NewEngine(fake.table(resource.KindMonitor))

	result, err := engine.Diff(context.Background(), resource.Document{
		"query": "avg:system.cpu{*} > 90",
		"name":  "CPU Alert",
		"id":    12345,
	}, "monitor.json")
	if err != nil {
		t.Fatalf("Diff() error: %v", err)
	}
	if !result.Equal || result.Unified != "" {
		t.Fatalf("expected identical resources, got %+v", result)
	}
}

func TestDiffRendersUnifiedHeaders(t *testing.T) {
	t.Parallel()

	fake := newFakeOperations()
	fake.live["12345"] = resource.Document{
		"id":    12345,
		"name":  "CPU Alert",
		"query": "avg:system.cpu{*} > 90",
	}
	engine := NewEngine(fake.table(resource.KindMonitor))

	result, err := engine.Diff(context.Background(), resource.Document{
		"id":    12345,
		"name":  "CPU Alert Updated",
		"query": "avg:system.cpu{*} > 90",
	}, "monitor.json")
	if err != nil {
		t.Fatalf("Diff() error: %v", err)
	}
	if result.Equal {
		t.Fatalf("expected differences")
	}
	for _, fragment := range []string{
		"--- live (monitor 12345)",
		"+++ local (monitor.json)",
		"-  \"name\": \"CPU Alert\"",
		"+  \"name\": \"CPU Alert Updated\"",
	} {
		if !strings.Contains(result.Unified, fragment) {
			t.Fatalf("diff missing %q:\n%s", fragment, result.Unified)
		}
	}
}

func TestDiffPropagatesRemoteErrors(t *testing.T) {
	t.Parallel()

	fake := newFakeOperations()
	engine := NewEngine(fake.table(resource.KindMonitor))

	_, err := engine.Diff(context.Background(), resource.Document{
		"id":    "999",
		"query": "avg:system.cpu{*} > 90",
	}, "monitor.json")
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
