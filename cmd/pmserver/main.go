// Command pmserver runs the project-management API and the integration
// admin tasks (self-test, log purge, settings seeding, reminders, digests).
//
// @title       Project Management API
// @version     1.0
// @description Organizations, projects, tasks and comments, with mail and chat notifications recorded in an integration log.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
