package cli

import (
	"errors"
	"fmt"
	"strings"

	"dogctl/config"
	"dogctl/faults"
	"dogctl/internal/cli/common"
)

type Dependencies struct {
	Profiles  config.ProfileService
	NewClient common.ClientFactory
}

func (d Dependencies) commandDependencies() common.CommandDependencies {
	return common.CommandDependencies{
		Profiles:  d.Profiles,
		NewClient: d.NewClient,
	}
}

func Execute(deps Dependencies) error {
	root := NewRootCommand(deps)
	if err := root.Execute(); err != nil {
		message := strings.TrimSpace(err.Error())
		if hint := faults.HintOf(err); hint != "" {
			message = fmt.Sprintf("%s (%s)", message, hint)
		}
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", message)
		return err
	}
	return nil
}

// ExitCodeForError maps the error taxonomy onto process exit codes.
func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.AuthError:
		return 2
	case faults.NotFoundError:
		return 3
	case faults.ValidationError:
		return 4
	case faults.RateLimitError:
		return 5
	case faults.ServerError:
		return 6
	default:
		return 1
	}
}
