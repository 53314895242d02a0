package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRunner struct {
	calls  [][]string
	failOn string
}

func (r *fakeRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if name == r.failOn {
		return "", errors.New(name + " exited with status 1")
	}
	return "", nil
}

func TestRunBundleRebuild(t *testing.T) {
	runner := &fakeRunner{}

	err := runBundleRebuild(context.Background(), runner, "/project", "asteroids")
	assert.NoError(t, err)

	assert.Equal(t, [][]string{
		{"npm", "run", "build"},
		{"gleam", "build", "--target", "javascript"},
		{"npx", "firefly-bundle", "asteroids"},
	}, runner.calls)
}

func TestRunBundleRebuild_FailFast(t *testing.T) {
	runner := &fakeRunner{failOn: "gleam"}

	err := runBundleRebuild(context.Background(), runner, "/project", "asteroids")
	assert.Error(t, err)

	// the bundler never runs after the compiler fails
	assert.Len(t, runner.calls, 2)
}
