package common

import (
	"io"

	"github.com/spf13/cobra"

	"dogctl/resource"
)

// LoadPayloadDocument reads a JSON resource definition from a file, or
// from stdin when path is "-".
func LoadPayloadDocument(command *cobra.Command, path string) (resource.Document, error) {
	if path == "-" {
		raw, err := io.ReadAll(command.InOrStdin())
		if err != nil {
			return nil, ValidationError("failed to read payload from stdin", err)
		}
		return resource.ParseDocument("stdin", raw)
	}
	return resource.LoadDocument(path)
}
