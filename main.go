package main

import (
	"fmt"
	"os"
	"strings"

	"forum/service"
)

const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the subcommand named by os.Args[1].
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	args := os.Args[2:]
	switch strings.ToLower(os.Args[1]) {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("forum version %s\n", CliVersion)
	case "serve":
		exit(service.RunAppServer(args))
	case "browse":
		exit(service.RunBrowser(args))
	case "db":
		exit(service.HandleDBCommand(args))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: forum <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve  [--addr :8080] [--db data/badger] [--allowed-origins *]
                                 Run the forum REST API.
  browse [--base-url URL] [--page-size N] [--author NAME] [--memcache HOST:PORT]
                                 Browse the forum in the terminal.
  db [--db data/badger] <clean|init|backup|restore <file>|seed>
                                 Manage the forum database.

Every command accepts --log-level (debug, info, warning, error).
Flags fall back to FORUM_* environment variables.
`
	fmt.Println(helpText)
}
