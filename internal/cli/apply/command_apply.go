package apply

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dogctl/declarative"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

// NewApplyCommand reconciles local JSON resource definitions against
// the remote account.
func NewApplyCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var fileFlag string
	var dryRun bool
	var recursive bool

	command := &cobra.Command{
		Use:   "apply",
		Short: "Create or update resources from local JSON definitions",
		Long: strings.Join([]string{
			"Apply classifies each JSON document as a monitor, dashboard, SLO, or downtime,",
			"then creates it remotely, or updates it in place when the document carries an 'id'.",
			"Directories are applied file by file with --recursive; one bad file does not stop the rest.",
		}, " "),
		Example: strings.Join([]string{
			"  dogctl apply -f monitor.json",
			"  dogctl apply -f monitor.json --dry-run",
			"  dogctl apply -f resources/ --recursive",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if strings.TrimSpace(fileFlag) == "" {
				return common.ValidationError("flag --file is required", nil)
			}

			// A dry run never talks to the API, so it must not demand
			// credentials either.
			engine := declarative.NewEngine(nil)
			if !dryRun {
				client, err := common.ResolveClient(deps, globalFlags)
				if err != nil {
					return err
				}
				engine = declarative.NewEngineForClient(client)
			}

			outcomes, err := engine.ApplyPath(command.Context(), fileFlag, recursive, dryRun)
			if err != nil {
				return err
			}
			return reportOutcomes(command, outcomes)
		},
	}

	command.Flags().StringVarP(&fileFlag, "file", "f", "", "JSON resource file, or a directory with --recursive")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "classify and report without touching the remote account")
	command.Flags().BoolVarP(&recursive, "recursive", "r", false, "apply every .json file under a directory")
	return command
}

func reportOutcomes(command *cobra.Command, outcomes []declarative.FileOutcome) error {
	var firstErr error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			if firstErr == nil {
				firstErr = outcome.Err
			}
			_, _ = fmt.Fprintf(command.ErrOrStderr(), "%s: error: %s\n", outcome.Path, strings.TrimSpace(outcome.Err.Error()))
			continue
		}
		_ = common.WriteText(command, formatOutcome(outcome))
	}
	return firstErr
}

func formatOutcome(outcome declarative.FileOutcome) string {
	result := outcome.Result
	target := string(result.Kind)
	if result.ID != "" {
		target += " " + result.ID
	}
	if result.DryRun {
		line := fmt.Sprintf("%s: would %s %s", outcome.Path, result.Action, target)
		if snippet := previewSnippet(result.Document); snippet != "" {
			line += " " + snippet
		}
		return line
	}
	return fmt.Sprintf("%s: %sd %s", outcome.Path, result.Action, target)
}

// previewLimit bounds how much of the document a dry-run line echoes.
const previewLimit = 200

func previewSnippet(doc resource.Document) string {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	snippet := string(encoded)
	if len(snippet) > previewLimit {
		snippet = snippet[:previewLimit] + "..."
	}
	return snippet
}
