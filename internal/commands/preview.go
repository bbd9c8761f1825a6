package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/gerunddev/dokumd/internal/batch"
	"github.com/gerunddev/dokumd/internal/diff"
)

// Preview converts a single page and prints the result
func Preview(args []string) {
	f, rest, err := parsePreviewFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail("Invalid arguments", err)
	}
	if len(rest) != 1 {
		fail("Usage: dokumd preview <page.txt> [--root] [--raw]", nil)
	}

	src, err := filepath.Abs(rest[0])
	if err != nil {
		fail("Invalid path", err)
	}
	content, err := os.ReadFile(src)
	if err != nil {
		fail("Error reading page", err)
	}

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		fail("Error loading config", err)
	}

	log, cleanup := openLogger(cfg, f.common.verbose)
	defer cleanup()

	opts, err := cfg.ConverterOptions(time.Now)
	if err != nil {
		fail("Invalid configuration", err)
	}

	isRoot := f.root || batch.IsRootPage(src, cfg.SrcDir, cfg.RootPage)
	page, err := batch.NewEngine(cfg, opts, log).Convert(context.Background(), src, content, isRoot)
	if err != nil {
		fail("Error converting page", err)
	}

	if f.raw {
		fmt.Println(page.Text())
		return
	}
	fmt.Print(diff.Render(page.Text()))
}
