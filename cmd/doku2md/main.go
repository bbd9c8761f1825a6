package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/gerunddev/dokumd/internal/convert"
)

const version = "0.1.0"

func main() {
	fs := flag.NewFlagSet("doku2md", flag.ContinueOnError)
	fs.Usage = printUsage

	root := fs.BoolP("root", "r", false, "convert as the root page")
	timestamp := fs.StringP("timestamp", "t", "", "front matter timestamp (RFC 3339, default now)")
	editor := fs.String("editor", convert.DefaultEditor, "front matter editor value")
	showVersion := fs.BoolP("version", "v", false, "show version information")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *showVersion {
		fmt.Printf("doku2md v%s\n", version)
		return
	}

	ts := time.Now()
	if *timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, *timestamp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid timestamp: %v\n", err)
			os.Exit(2)
		}
		ts = parsed
	}

	input, err := readInput(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	conv := convert.NewConverter(convert.Options{Timestamp: ts, Editor: *editor})
	fmt.Println(conv.ConvertString(string(input), *root).Text())
}

// readInput reads the named page, or stdin when no file or "-" is given
func readInput(args []string) ([]byte, error) {
	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		return io.ReadAll(os.Stdin)
	case len(args) == 1:
		return os.ReadFile(args[0])
	default:
		return nil, fmt.Errorf("expected one input file, got %d", len(args))
	}
}

func printUsage() {
	usage := `doku2md - Convert a single DokuWiki page to Wiki.js Markdown

Usage:
  doku2md [options] [page.txt]

Reads stdin when no page is given and writes Markdown to stdout.

Options:
  -r, --root              convert as the root page
  -t, --timestamp string  front matter timestamp (RFC 3339, default now)
      --editor string     front matter editor value (default "undefined")
  -v, --version           show version information

Examples:
  doku2md pages/wiki/syntax.txt > syntax.md
  cat pages/start.txt | doku2md --root
`
	fmt.Print(usage)
}
