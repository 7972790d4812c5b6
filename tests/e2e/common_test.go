package e2e

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildDepotBinary builds the depot binary in the specified directory and returns its path.
func buildDepotBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "depot.exe")
	// Tests run from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/depot")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build depot: %v\n%s", err, string(out))
	}
	return bin
}

// runCmd runs name in dir and returns its stdout. A non-zero exit fails the
// test unless wantErr is set.
func runCmd(t *testing.T, dir string, wantErr bool, name string, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if wantErr && err == nil {
		t.Fatalf("Command %s %v succeeded, expected failure.\nstdout:\n%s", name, args, stdout.String())
	}
	if !wantErr && err != nil {
		t.Fatalf("Command %s %v failed in %s: %v\nstderr:\n%s", name, args, dir, err, stderr.String())
	}
	return stdout.String()
}
