package main

import (
	"os"

	"github.com/wonny/fxsim/backend/cmd/fxsim/commands"
)

// main is the entry point for the fxsim CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/fxsim [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
