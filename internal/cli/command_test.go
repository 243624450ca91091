package cli

import (
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	orig := os.Stdout
	os.Stdout = w

	fn()

	os.Stdout = orig

	if err := w.Close(); err != nil {
		t.Fatalf("closing pipe: %v", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading pipe: %v", err)
	}

	return string(out)
}

func TestExecuteVersionPrintsAndExitsOK(t *testing.T) {
	cli := New("v1.2.3")

	var code int

	out := captureStdout(t, func() {
		code = cli.Execute([]string{"--version"})
	})

	if code != exitOK {
		t.Fatalf("got exit code %d, want %d", code, exitOK)
	}

	if strings.TrimSpace(out) != "v1.2.3" {
		t.Fatalf("got output %q, want the version string", out)
	}
}

func TestExecuteUnknownFlagExitsUsage(t *testing.T) {
	cli := New("v1")

	code := cli.Execute([]string{"--not-a-real-flag"})
	if code != exitUsage {
		t.Fatalf("got exit code %d, want %d", code, exitUsage)
	}
}

func TestExecuteInvalidSizeLimitExitsUsage(t *testing.T) {
	cli := New("v1")

	code := cli.Execute([]string{"--size-limit", "not-a-size", t.TempDir()})
	if code != exitUsage {
		t.Fatalf("got exit code %d, want %d", code, exitUsage)
	}
}

func TestExecuteInvalidExcludePatternExitsFatal(t *testing.T) {
	cli := New("v1")

	code := cli.Execute([]string{"--exclude", "(unterminated", t.TempDir()})
	if code != exitFatal {
		t.Fatalf("got exit code %d, want %d", code, exitFatal)
	}
}

func TestExecuteIntegrationPrintsScript(t *testing.T) {
	if _, err := exec.LookPath("zsh"); err != nil {
		t.Skip("zsh not installed in this environment")
	}

	if _, err := exec.LookPath("duacc"); err != nil {
		t.Skip("duacc not installed on PATH in this environment")
	}

	cli := New("v1")

	var code int

	out := captureStdout(t, func() {
		code = cli.Execute([]string{"--integration"})
	})

	if code != exitOK {
		t.Fatalf("got exit code %d, want %d", code, exitOK)
	}

	if !strings.Contains(out, "duacc-fzf") {
		t.Fatalf("got output %q, want the zsh widget body", out)
	}
}

func TestExecuteRunsAgainstRealDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/file.txt", []byte("hello"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cli := New("v1")

	var code int

	out := captureStdout(t, func() {
		code = cli.Execute([]string{"-q", dir})
	})

	if code != exitOK {
		t.Fatalf("got exit code %d, want %d", code, exitOK)
	}

	if !strings.Contains(out, "1") {
		t.Fatalf("got output %q, want the one-file tally", out)
	}
}
