package declarative

import (
	"context"
	"fmt"
	"os"

	"dogctl/debugctx"
	"dogctl/faults"
	"dogctl/resource"
)

type ApplyAction string

const (
	ActionCreate ApplyAction = "create"
	ActionUpdate ApplyAction = "update"
)

// ApplyResult describes one reconciled document. For dry runs Document
// echoes the local definition and no remote call is made; otherwise it
// carries the remote response.
type ApplyResult struct {
	Kind     resource.Kind
	Action   ApplyAction
	ID       string
	DryRun   bool
	Document resource.Document
}

// Apply reconciles a single document: documents carrying an id are
// updated in place, documents without one are created. The id never
// travels in the request body.
func (e *Engine) Apply(ctx context.Context, doc resource.Document, dryRun bool) (*ApplyResult, error) {
	kind, err := resource.Detect(doc)
	if err != nil {
		return nil, err
	}

	id, hasID := doc.ID()
	action := ActionCreate
	if hasID {
		action = ActionUpdate
	}

	if dryRun {
		debugctx.Printf(ctx, "dry-run: would %s %s %s", action, kind, id)
		return &ApplyResult{Kind: kind, Action: action, ID: id, DryRun: true, Document: doc}, nil
	}

	operations, found := e.operations[kind]
	if !found {
		return nil, faults.NewTypedError(faults.InternalError, fmt.Sprintf("no operations registered for resource kind %q", kind), nil)
	}

	var applied resource.Document
	switch action {
	case ActionUpdate:
		applied, err = operations.Update(ctx, id, doc.WithoutID())
	default:
		applied, err = operations.Create(ctx, doc)
	}
	if err != nil {
		return nil, err
	}

	resultID := id
	if appliedID, ok := applied.ID(); ok {
		resultID = appliedID
	}
	return &ApplyResult{Kind: kind, Action: action, ID: resultID, Document: applied}, nil
}

// FileOutcome reports the result of applying one file in a batch.
// Exactly one of Result and Err is set.
type FileOutcome struct {
	Path   string
	Result *ApplyResult
	Err    error
}

// ApplyPath applies the resource definition at path. Directories are
// refused unless recursive is set, in which case every .json file under
// the tree is applied independently in sorted path order; one file
// failing never stops the rest.
func (e *Engine) ApplyPath(ctx context.Context, path string, recursive bool, dryRun bool) ([]FileOutcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, faults.NewTypedError(faults.ValidationError, "File not found: "+path, err)
	}

	if !info.IsDir() {
		return []FileOutcome{e.applyFile(ctx, path, dryRun)}, nil
	}

	if !recursive {
		return nil, faults.NewTypedError(faults.ValidationError, path+" is a directory", nil).
			WithHint("pass --recursive to apply every JSON file under it")
	}

	files, err := CollectJSONFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, faults.NewTypedError(faults.ValidationError, "No JSON files found in "+path, nil)
	}

	outcomes := make([]FileOutcome, 0, len(files))
	for _, file := range files {
		outcomes = append(outcomes, e.applyFile(ctx, file, dryRun))
	}
	return outcomes, nil
}

func (e *Engine) applyFile(ctx context.Context, path string, dryRun bool) FileOutcome {
	doc, err := resource.LoadDocument(path)
	if err != nil {
		return FileOutcome{Path: path, Err: err}
	}

	result, err := e.Apply(ctx, doc, dryRun)
	if err != nil {
		return FileOutcome{Path: path, Err: err}
	}
	return FileOutcome{Path: path, Result: result}
}
