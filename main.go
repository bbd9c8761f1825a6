package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/dokumd/internal/commands"
	"github.com/gerunddev/dokumd/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "convert":
		commands.Convert(os.Args[2:])
	case "review":
		commands.Review(os.Args[2:])
	case "preview":
		commands.Preview(os.Args[2:])
	case "init":
		commands.Init(os.Args[2:])
	case "config":
		commands.ShowConfig(os.Args[2:])
	case "status":
		commands.Status(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("dokumd v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`dokumd - Convert DokuWiki pages to Wiki.js Markdown

Usage:
  dokumd <command> [options]

Commands:
  convert     Convert every page under the source directory
  review      Browse what a conversion would change and write pages one by one
  preview     Convert one page and print the result
  init        Write a default config file
  config      Show the effective configuration
  status      Show the most recent run from the log file
  version     Show version information
  help        Show this help message

Examples:
  dokumd init --src ~/dokuwiki/data/pages --dest ~/wikijs-pages
  dokumd convert
  dokumd convert --dry-run --diff
  dokumd convert --engine pandoc --workers 8
  dokumd review
  dokumd preview pages/wiki/syntax.txt
  dokumd preview pages/start.txt --root --raw

Configuration:
  Config file: %s

For more information, visit: https://github.com/gerunddev/dokumd
`, config.ConfigPath())
	fmt.Print(usage)
}
