package declarative

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"dogctl/faults"
	"dogctl/resource"
)

// DiffResult carries the comparison between a local definition and its
// live remote counterpart. Unified is empty when both canonical forms
// are byte-identical.
type DiffResult struct {
	Kind    resource.Kind
	ID      string
	Equal   bool
	Unified string
}

// Diff fetches the live resource referenced by the document's id and
// compares canonical JSON renderings of both sides. The live state is
// the "from" side of the unified diff, the local file the "to" side.
func (e *Engine) Diff(ctx context.Context, doc resource.Document, localPath string) (*DiffResult, error) {
	id, hasID := doc.ID()
	if !hasID {
		return nil, faults.NewTypedError(faults.ValidationError, "Resource has no 'id' field, cannot diff against live state", nil).
			WithHint("add the id of the remote resource to " + localPath)
	}

	kind, err := resource.Detect(doc)
	if err != nil {
		return nil, err
	}

	operations, found := e.operations[kind]
	if !found {
		return nil, faults.NewTypedError(faults.InternalError, fmt.Sprintf("no operations registered for resource kind %q", kind), nil)
	}

	live, err := operations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	liveCanonical, err := resource.CanonicalJSON(live)
	if err != nil {
		return nil, err
	}
	localCanonical, err := resource.CanonicalJSON(doc)
	if err != nil {
		return nil, err
	}

	if liveCanonical == localCanonical {
		return &DiffResult{Kind: kind, ID: id, Equal: true}, nil
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(liveCanonical),
		B:        difflib.SplitLines(localCanonical),
		FromFile: fmt.Sprintf("live (%s %s)", kind, id),
		ToFile:   fmt.Sprintf("local (%s)", localPath),
		Context:  3,
	})
	if err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "failed to render diff", err)
	}

	return &DiffResult{Kind: kind, ID: id, Unified: unified}, nil
}

// DiffPath loads the document at path and diffs it against live state.
func (e *Engine) DiffPath(ctx context.Context, path string) (*DiffResult, error) {
	doc, err := resource.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return e.Diff(ctx, doc, path)
}
