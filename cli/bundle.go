package cli

import (
	"context"

	"github.com/firefly-engine/firefly/proc"
)

// runBundleRebuild re-runs only the build and package stage for a project
// whose bundles already exist: the runtime build, the project compiler, then
// the platform bundler. The first non-zero exit aborts the chain.
func runBundleRebuild(ctx context.Context, runner proc.CommandRunner, dir, projectName string) error {
	commands := [][]string{
		{"npm", "run", "build"},
		{"gleam", "build", "--target", "javascript"},
		{"npx", "firefly-bundle", projectName},
	}
	for _, command := range commands {
		if _, err := runner.Run(ctx, dir, command[0], command[1:]...); err != nil {
			return err
		}
	}
	return nil
}
