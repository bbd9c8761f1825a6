package commands

import (
	flag "github.com/spf13/pflag"

	"github.com/gerunddev/dokumd/internal/config"
)

// commonFlags holds flags shared across commands
type commonFlags struct {
	config  string
	verbose bool
}

// convertFlags holds all flags for the convert command
type convertFlags struct {
	common    commonFlags
	src       string
	dest      string
	engine    string
	workers   int
	timestamp string
	dryRun    bool
	diff      bool
	plain     bool
	failFast  bool
}

// previewFlags holds flags for the preview command
type previewFlags struct {
	common commonFlags
	root   bool
	raw    bool
}

// initFlags holds flags for the init command
type initFlags struct {
	common commonFlags
	src    string
	dest   string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output")
}

func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)

	fs.StringVarP(&f.src, "src", "s", "", "source pages directory")
	fs.StringVarP(&f.dest, "dest", "d", "", "destination directory")
	fs.StringVarP(&f.engine, "engine", "e", "", "conversion engine (builtin, pandoc)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "number of pages converted in parallel")
	fs.StringVar(&f.timestamp, "timestamp", "", "front matter timestamp (RFC 3339 or \"now\")")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "convert without writing any files")
	fs.BoolVar(&f.diff, "diff", false, "with --dry-run, show a diff against existing output")
	fs.BoolVar(&f.plain, "plain", false, "print plain progress lines instead of the interactive view")
	fs.BoolVar(&f.failFast, "fail-fast", false, "stop at the first page that fails")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)

	fs.BoolVarP(&f.root, "root", "r", false, "convert as the root page")
	fs.BoolVar(&f.raw, "raw", false, "print markdown without terminal rendering")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseInitFlags(args []string) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)

	fs.StringVarP(&f.src, "src", "s", "", "source pages directory")
	fs.StringVarP(&f.dest, "dest", "d", "", "destination directory")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing config file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// applyOverrides copies explicitly set convert flags onto cfg
func (f *convertFlags) applyOverrides(cfg *config.Config) {
	if f.src != "" {
		cfg.SrcDir = f.src
	}
	if f.dest != "" {
		cfg.DestDir = f.dest
	}
	if f.engine != "" {
		cfg.Engine = f.engine
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.timestamp != "" {
		cfg.Timestamp = f.timestamp
	}
	if f.failFast {
		cfg.FailFast = true
	}
}
