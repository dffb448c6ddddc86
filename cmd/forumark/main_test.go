package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"a.txt", "--bold-color", "red", "--font-size=14", "-o", "out.html", "--no-highlight", "--timeout", "2s", "b.txt"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if opts.boldColor != "red" || opts.fontSize != "14" || opts.outPath != "out.html" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if !opts.noHighlight || opts.timeout != 2*time.Second {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if strings.Join(opts.inputs, ",") != "a.txt,b.txt" {
		t.Fatalf("unexpected inputs: %v", opts.inputs)
	}

	opts, err = parseArgs(nil)
	if err != nil {
		t.Fatalf("parseArgs defaults: %v", err)
	}
	if opts.timeout != defaultTimeout || opts.emojiLoader() != nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestParseArgsErrors(t *testing.T) {
	if _, err := parseArgs([]string{"--emoji-file", "a.yaml", "--emoji-url", "http://x"}); err == nil {
		t.Fatalf("expected error for both emoji sources")
	}
	if _, err := parseArgs([]string{"--timeout", "0s"}); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
	if _, err := parseArgs([]string{"--nope"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
	if _, err := parseArgs([]string{"--help"}); !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
}

func TestRunStdinToStdout(t *testing.T) {
	opts, err := parseArgs([]string{"--no-highlight", "--bold-color", "red"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	var out bytes.Buffer
	if err := run(context.Background(), opts, strings.NewReader("[b]hi[/b]"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "<p><strong style=\"color:red\">hi</strong></p>\n"; got != want {
		t.Fatalf("run output = %q, want %q", got, want)
	}
}

func TestRunFilesToOutput(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	emojis := filepath.Join(dir, "emojis.yaml")
	if err := os.WriteFile(first, []byte("one"), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two :smile:"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	if err := os.WriteFile(emojis, []byte("- category: native\n  items:\n    - code: smile\n      url: https://e.test/smile.png\n"), 0o644); err != nil {
		t.Fatalf("write emojis: %v", err)
	}
	outPath := filepath.Join(dir, "nested", "out.html")

	opts, err := parseArgs([]string{"--no-highlight", "--emoji-file", emojis, "-o", outPath, first, second})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if err := run(context.Background(), opts, strings.NewReader(""), &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "<p>one</p>\n<p>two <img class=\"emoji emoji-native\" src=\"https://e.test/smile.png\"") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRunMissingInput(t *testing.T) {
	opts, err := parseArgs([]string{filepath.Join(t.TempDir(), "missing.txt")})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if err := run(context.Background(), opts, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for missing input file")
	}
}

type failingCloser struct {
	closed bool
}

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWriteOutputReportsCloseError(t *testing.T) {
	var out bytes.Buffer
	closer := &failingCloser{}
	err := writeOutput(&out, closer, "<p>x</p>")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected close error, got %v", err)
	}
	if !closer.closed {
		t.Fatalf("output was not closed")
	}
	if out.String() != "<p>x</p>\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	if err := writeOutput(&out, nil, "y"); err != nil {
		t.Fatalf("writeOutput without closer: %v", err)
	}
}
