// Package gitlog exports the commit stream the article miner consumes.
package gitlog

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// prettyFormat emits the line markers pkg/history recognizes.
const prettyFormat = "format:#ItemAuthor#%an%n#ItemDate#%cd"

// Args builds the git log argument list for the commit stream export:
// markdown files added or renamed within the lookback window, with
// zero-padded local timestamps so dates sort lexicographically.
func Args(lookbackDays int) []string {
	return []string{
		"log",
		fmt.Sprintf("--since=%d days ago", lookbackDays),
		"--pretty=" + prettyFormat,
		"--name-only",
		"--diff-filter=AR",
		"--date=format-local:%m/%d/%y %H:%M:%S",
		"--",
		"*.md",
	}
}

// Export runs git log in repoDir and returns the raw commit stream.
func Export(ctx context.Context, repoDir string, lookbackDays int) (string, error) {
	cmd := exec.CommandContext(ctx, "git", Args(lookbackDays)...)
	cmd.Dir = repoDir

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git log failed: %w: %s", err, stderr.String())
	}
	return out.String(), nil
}
