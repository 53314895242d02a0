package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/firefly-engine/firefly/fs"
)

// FileName is the project manifest the wizard edits.
const FileName = "gleam.toml"

// maxSearchDepth bounds the upward manifest search so a run started outside
// any project cannot walk past the filesystem root indefinitely.
const maxSearchDepth = 8

const targetLine = `target = "javascript"`

const dependenciesSection = "[dependencies]"
const devDependenciesSection = "[dev-dependencies]"

const fireflyDependency = `firefly = ">= 1.0.0 and < 2.0.0"`
const lustreDependency = `lustre = ">= 4.0.0 and < 5.0.0"`
const devToolingDependency = `firefly_dev = ">= 1.0.0 and < 2.0.0"`

const toolingHTMLBlock = `[tooling.html]
entry = "index.html"
output = "dist"
`

// Find walks upward from start looking for the manifest file, checking at
// most maxSearchDepth parent directories.
func Find(fsys *fs.FileSystem, start string) (string, error) {
	dir := filepath.Clean(start)
	for i := 0; i <= maxSearchDepth; i++ {
		candidate := filepath.Join(dir, FileName)
		if fsys.Exists(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no %s found in %s or its parents", FileName, start)
}

// Editor applies idempotent text edits to the manifest. The manifest is never
// structurally parsed; presence of a line or block is detected by substring.
type Editor struct {
	fs *fs.FileSystem
}

func NewEditor(fsys *fs.FileSystem) *Editor {
	return &Editor{fs: fsys}
}

// Update ensures the javascript target declaration, the runtime and dev
// dependency lines, and the html tooling block are each present exactly once.
// Running it twice with the same inputs leaves the manifest unchanged.
func (e *Editor) Update(path string, includeUIOverlay bool) error {
	content, err := e.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read manifest: %w", err)
	}

	content = ensureTarget(content)

	deps := []string{fireflyDependency}
	if includeUIOverlay {
		deps = append(deps, lustreDependency)
	}
	content = ensureSectionLines(content, dependenciesSection, deps)
	content = ensureSectionLines(content, devDependenciesSection, []string{devToolingDependency})

	if !strings.Contains(content, "[tooling.html]") {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += "\n" + toolingHTMLBlock
	}

	if err := e.fs.WriteFile(path, content); err != nil {
		return fmt.Errorf("could not write manifest: %w", err)
	}
	return nil
}

// ensureTarget inserts the target declaration into the top-level key block,
// before the first section header, if it is not already present.
func ensureTarget(content string) string {
	if strings.Contains(content, targetLine) {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			rest := append([]string{targetLine}, lines[i:]...)
			return strings.Join(append(lines[:i:i], rest...), "\n")
		}
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + targetLine + "\n"
}

// ensureSectionLines makes sure the section header exists and that each of
// the given lines appears in the manifest, inserting missing lines directly
// under the header. Already-present lines are never duplicated.
func ensureSectionLines(content, header string, wanted []string) string {
	if !strings.Contains(content, header) {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += "\n" + header + "\n"
	}

	var missing []string
	for _, line := range wanted {
		if !strings.Contains(content, line) {
			missing = append(missing, line)
		}
	}
	if len(missing) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == header {
			rest := append(append([]string{}, missing...), lines[i+1:]...)
			return strings.Join(append(lines[:i+1:i+1], rest...), "\n")
		}
	}
	return content
}
