package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/riverfjs/forumark"
)

const defaultTimeout = 10 * time.Second

type options struct {
	boldColor   string
	fontSize    string
	emojiFile   string
	emojiURL    string
	outPath     string
	noHighlight bool
	timeout     time.Duration
	inputs      []string
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "forumark: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("forumark", pflag.ContinueOnError)
	flags.StringVar(&opts.boldColor, "bold-color", "", "CSS colour applied to bold text")
	flags.StringVar(&opts.fontSize, "font-size", "", "Font size of the preview (bare numbers are px)")
	flags.StringVar(&opts.emojiFile, "emoji-file", "", "YAML or JSON emoji list")
	flags.StringVar(&opts.emojiURL, "emoji-url", "", "URL of a JSON emoji list")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&opts.noHighlight, "no-highlight", false, "Render code blocks without highlighting")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Upper bound for highlighting and emoji loading")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: forumark [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, markup is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if opts.emojiFile != "" && opts.emojiURL != "" {
		return nil, fmt.Errorf("--emoji-file and --emoji-url are mutually exclusive")
	}
	if opts.timeout <= 0 {
		return nil, fmt.Errorf("invalid --timeout %s", opts.timeout)
	}
	opts.inputs = flags.Args()
	return opts, nil
}

func (o *options) emojiLoader() forumark.EmojiLoader {
	switch {
	case o.emojiFile != "":
		return &forumark.EmojiFileLoader{Path: o.emojiFile}
	case o.emojiURL != "":
		return &forumark.EmojiHTTPLoader{URL: o.emojiURL}
	}
	return nil
}

func (o *options) renderOptions() []forumark.Option {
	opts := []forumark.Option{
		forumark.WithBoldColor(o.boldColor),
		forumark.WithFontSize(o.fontSize),
	}
	if o.noHighlight {
		opts = append(opts, forumark.WithHighlighter(nil))
	}
	if loader := o.emojiLoader(); loader != nil {
		opts = append(opts, forumark.WithEmojis(forumark.NewEmojiCache(loader)))
	}
	return opts
}

func run(ctx context.Context, opts *options, stdin io.Reader, stdout io.Writer) error {
	markup, err := readInputs(opts.inputs, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	html := forumark.Render(ctx, markup, opts.renderOptions()...)

	writer, closer, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	return writeOutput(writer, closer, html)
}

// writeOutput writes html and closes the output file, if any. A close
// error is reported when the write succeeded.
func writeOutput(w io.Writer, closer io.Closer, html string) (err error) {
	if closer != nil {
		defer func() {
			if cerr := closer.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
	}
	if _, err := io.WriteString(w, html+"\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// readInputs concatenates the input files as separate paragraphs, or
// reads stdin when none are given.
func readInputs(paths []string, stdin io.Reader) (string, error) {
	if len(paths) == 0 {
		if isTerminal(stdin) {
			return "", fmt.Errorf("no input files and stdin is a terminal")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n\n"), nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
