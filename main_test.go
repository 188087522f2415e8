package main_test

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

var update = flag.Bool("update", false, "updates the expected output of each test")

var (
	printsRe      = regexp.MustCompile(`// prints: (.+)`)
	errorRe       = regexp.MustCompile(`// error: (.+)`)
	stderrErrorRe = regexp.MustCompile(`(?m)^\d+:\d+: (?:Syntax|Runtime) Error: (.+)$`)
)

func TestSlox(t *testing.T) {
	sloxPath := mustBuildBinary(t)

	paths, err := filepath.Glob(filepath.Join("testdata", "*.slox"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no .slox files found under testdata")
	}

	for _, path := range paths {
		t.Run(snakeToPascalCase(strings.TrimSuffix(filepath.Base(path), ".slox")), func(t *testing.T) {
			t.Parallel()
			if *update {
				mustUpdateExpectedResult(t, sloxPath, path)
				return
			}
			want := mustParseExpectedResult(t, path)
			got := mustRunSlox(t, sloxPath, path)

			if want.ExitCode != got.ExitCode {
				t.Fatalf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", got.ExitCode, want.ExitCode, got.Stdout, got.Stderr)
			}
			if want.Stdout != got.Stdout {
				t.Errorf("incorrect output printed to stdout:\n%s", computeTextDiff(want.Stdout, got.Stdout))
			}
			if diff := cmp.Diff(want.Errors, got.Errors); diff != "" {
				t.Errorf("incorrect errors printed to stderr (-want +got):\n%s\nstderr:\n%s", diff, got.Stderr)
			}
		})
	}
}

func TestSloxWithoutAScript(t *testing.T) {
	sloxPath := mustBuildBinary(t)

	cmd := exec.Command(sloxPath)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	err := cmd.Run()
	exitErr := &exec.ExitError{}
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected slox to exit with an error, got %v", err)
	}
	if got, want := stderr.String(), "script file was not provided\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

type sloxResult struct {
	Stdout   string
	Stderr   string
	Errors   []string
	ExitCode int
}

func mustRunSlox(t *testing.T, sloxPath, path string) *sloxResult {
	t.Helper()

	cmd := exec.Command(sloxPath, path)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	exitErr := &exec.ExitError{}
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatal(err)
	}

	var errors []string
	for _, match := range stderrErrorRe.FindAllStringSubmatch(stderr.String(), -1) {
		errors = append(errors, match[1])
	}

	return &sloxResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Errors:   errors,
		ExitCode: cmd.ProcessState.ExitCode(),
	}
}

// mustParseExpectedResult parses the "// prints:" and "// error:" comments of a .slox file into the result that
// running the file should produce.
func mustParseExpectedResult(t *testing.T, path string) *sloxResult {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	result := &sloxResult{}
	var stdout strings.Builder
	for _, match := range printsRe.FindAllSubmatch(data, -1) {
		fmt.Fprintf(&stdout, "%s\n", match[1])
	}
	result.Stdout = stdout.String()
	for _, match := range errorRe.FindAllSubmatch(data, -1) {
		result.Errors = append(result.Errors, string(match[1]))
	}
	if len(result.Errors) > 0 {
		result.ExitCode = 1
	}

	return result
}

// mustUpdateExpectedResult reruns a .slox file and rewrites its "// prints:" and "// error:" comments with the
// output that the run actually produced.
func mustUpdateExpectedResult(t *testing.T, sloxPath, path string) {
	t.Helper()

	got := mustRunSlox(t, sloxPath, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var stdoutLines []string
	if got.Stdout != "" {
		stdoutLines = strings.Split(strings.TrimSuffix(got.Stdout, "\n"), "\n")
	}
	data = mustUpdateComments(t, path, data, printsRe, stdoutLines)
	data = mustUpdateComments(t, path, data, errorRe, got.Errors)

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

// mustUpdateComments replaces the capture group of each match of commentRe in fileContents with the
// corresponding line.
func mustUpdateComments(t *testing.T, path string, fileContents []byte, commentRe *regexp.Regexp, lines []string) []byte {
	t.Helper()

	matches := commentRe.FindAllSubmatchIndex(fileContents, -1)
	if len(lines) != len(matches) {
		t.Fatalf("%d %q comments found in %s but %d lines were output, these should be equal", len(matches), commentRe, path, len(lines))
	}
	if len(lines) == 0 {
		return fileContents
	}

	var b bytes.Buffer
	lastEnd := 0
	for i, match := range matches {
		start, end := match[2], match[3]
		b.Write(fileContents[lastEnd:start])
		b.WriteString(lines[i])
		lastEnd = end
	}
	b.Write(fileContents[lastEnd:])

	return b.Bytes()
}

func mustBuildBinary(t *testing.T) string {
	t.Helper()

	sloxPath := filepath.Join(t.TempDir(), "slox")
	cmd := exec.Command("go", "build", "-o", sloxPath, ".")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("building slox: %s: %v\nOutput:\n%s\n", cmd.String(), err, string(output))
	}

	return sloxPath
}

// computeTextDiff returns a human-readable unified diff of a wanted and got string.
func computeTextDiff(want, got string) string {
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	return fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
}

func snakeToPascalCase(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}
