package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		msg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "import file", args: []string{"import", "frames.json"}, mode: cliImport, msg: "frames.json"},
		{name: "import stdin", args: []string{"import", "-"}, mode: cliImport, msg: "-"},
		{name: "import missing file", args: []string{"import"}, mode: cliInvalid, msg: "import needs exactly one file (use - for stdin)"},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "too many args", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, msg := parseCLIArgs(tc.args)
			if mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", mode, tc.mode)
			}
			if tc.msg != "" && msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", msg, tc.msg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.time":     "2026-01-02T03:04:05Z",
	})
	if v != "v1.2.3" || c != "0123456789ab" || d != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected version info: %s %s %s", v, c, d)
	}

	v, _, _ = resolveVersionInfo("v9", "abc", "today", "(devel)", nil)
	if v != "v9" {
		t.Fatalf("explicit version should win, got %s", v)
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{name: "help", args: []string{"--help"}, code: 0, stdout: "Usage: terminalframes"},
		{name: "invalid", args: []string{"--bogus"}, code: 2, stderr: "unexpected argument: --bogus"},
		{name: "import missing file", args: []string{"import", "does-not-exist.json"}, code: 1, stderr: "import:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("TERMINALFRAMES_CONFIG_DIR", dir)
			t.Setenv("TERMINALFRAMES_LOG", filepath.Join(dir, "frames.log"))

			var stdout, stderr bytes.Buffer
			code := run(tc.args, &stdout, &stderr)
			if code != tc.code {
				t.Fatalf("exit code: got %d want %d (stderr %q)", code, tc.code, stderr.String())
			}
			if !strings.Contains(stdout.String(), tc.stdout) {
				t.Fatalf("stdout %q missing %q", stdout.String(), tc.stdout)
			}
			if !strings.Contains(stderr.String(), tc.stderr) {
				t.Fatalf("stderr %q missing %q", stderr.String(), tc.stderr)
			}
		})
	}
}
