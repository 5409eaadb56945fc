package main

import (
	"fmt"
	"os"

	"github.com/compozy/upstream-sync/cmd"
	"github.com/compozy/upstream-sync/internal/service"
)

func main() {
	cmd.InitCommands()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		service.NewAnnotator(os.Stdout, os.Getenv("GITHUB_ACTIONS") == "true").Error(err.Error())
		os.Exit(1)
	}
}
