package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/dokumd/internal/config"
	"github.com/gerunddev/dokumd/internal/styles"
)

// Init writes a default config file
func Init(args []string) {
	f, _, err := parseInitFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail("Invalid arguments", err)
	}

	path := configFile(f.common.config)
	if _, err := os.Stat(path); err == nil && !f.force {
		fail("Config already exists at "+path+" (use --force to overwrite)", nil)
	}

	cfg := config.DefaultConfig()
	if f.src != "" {
		cfg.SrcDir = f.src
	}
	if f.dest != "" {
		cfg.DestDir = f.dest
	}
	if err := cfg.ExpandPaths(); err != nil {
		fail("Invalid path", err)
	}
	if err := cfg.Validate(); err != nil {
		fail("Invalid configuration", err)
	}

	if err := cfg.SaveFile(path); err != nil {
		fail("Error writing config", err)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Wrote " + path))
	fmt.Println(styles.DimStyle.Render("  Edit src_dir and dest_dir, then run 'dokumd convert'"))
}

// ShowConfig prints the effective configuration
func ShowConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var common commonFlags
	addCommonFlags(fs, &common)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fail("Invalid arguments", err)
	}

	path := configFile(common.config)
	cfg, err := loadConfig(common.config)
	if err != nil {
		fail("Error loading config", err)
	}

	source := path
	if _, err := os.Stat(path); err != nil {
		source = path + " (not found, using defaults)"
	}

	fmt.Println(styles.TitleStyle.Render("dokumd configuration"))
	fmt.Println(styles.KeyStyle.Render("Config file") + styles.ValueStyle.Render(source))
	fmt.Println()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fail("Error encoding config", err)
	}
	fmt.Print(string(data))
}

// Status shows the most recent run recorded in the log file
func Status(args []string) {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	var common commonFlags
	addCommonFlags(fs, &common)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fail("Invalid arguments", err)
	}

	cfg, err := loadConfig(common.config)
	if err != nil {
		fail("Error loading config", err)
	}

	fmt.Println(styles.TitleStyle.Render("dokumd status"))
	fmt.Println(styles.KeyStyle.Render("Source") + styles.ValueStyle.Render(cfg.SrcDir))
	fmt.Println(styles.KeyStyle.Render("Destination") + styles.ValueStyle.Render(cfg.DestDir))
	fmt.Println(styles.KeyStyle.Render("Engine") + styles.ValueStyle.Render(cfg.Engine))

	if cfg.LogFile == "" {
		fmt.Println()
		fmt.Println(styles.DimStyle.Render("No log_file configured; run history is not recorded"))
		return
	}

	fmt.Println(styles.KeyStyle.Render("Log file") + styles.ValueStyle.Render(cfg.LogFile))
	lines, lastRun, files := ParseLogFile(cfg.LogFile, 20)
	if lastRun.IsZero() {
		fmt.Println(styles.KeyStyle.Render("Last run") + styles.DimStyle.Render("never"))
	} else {
		ago := time.Since(lastRun).Round(time.Second)
		fmt.Println(styles.KeyStyle.Render("Last run") +
			styles.ValueStyle.Render(fmt.Sprintf("%s (%v ago), %d page(s)", lastRun.Format(time.DateTime), ago, files)))
	}

	fmt.Println()
	fmt.Println(styles.HelpStyle.Render("Recent log:"))
	for _, line := range lines {
		fmt.Println(styles.DimStyle.Render("  " + line))
	}
}
