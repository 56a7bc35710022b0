package main

import (
	"os"

	"dogctl/config"
	"dogctl/internal/cli"
)

func main() {
	deps := cli.Dependencies{
		Profiles: config.NewProfileService(),
	}
	if err := cli.Execute(deps); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
