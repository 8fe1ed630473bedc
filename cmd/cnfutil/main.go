package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/cnf-kit/pkg/logging"
	"github.com/bgrewell/cnf-kit/pkg/options"
	"github.com/bgrewell/usage"
	"golang.org/x/term"
)

var (
	version = "dev"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("cnfutil"),
		usage.WithApplicationDescription("cnfutil reads, checks and rewrites PlayStation 2 SYSTEM.CNF boot configuration files, either standalone or from the root of an ISO9660 disc image.\n\nCommands:\n  show <file>       print the decoded fields\n  normalize <file>  re-encode in the canonical layout\n  build <yaml>      encode a record described in YAML\n  extract <iso>     print the SYSTEM.CNF of a disc image\n  check <file>      lint the boot path and version\n  scan <dir>        summarize the SYSTEM.CNF of every .iso in a directory"),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	debug := u.AddBooleanOption("v", "verbose", false, "Enable verbose (debug) logging", "", nil)
	trace := u.AddBooleanOption("vv", "trace", false, "Enable trace logging", "", nil)
	asYAML := u.AddBooleanOption("y", "yaml", false, "Print records as YAML (show, extract)", "", nil)
	strip := u.AddBooleanOption("s", "strip", false, "Strip the ;1 version suffix from the boot path", "", nil)
	lf := u.AddBooleanOption("l", "lf", false, "Write LF line endings instead of CRLF", "", nil)
	command := u.AddArgument(1, "command", "One of show, normalize, build, extract, check or scan", "")
	path := u.AddArgument(2, "path", "SYSTEM.CNF file, YAML file, disc image or directory depending on the command", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		fmt.Println("cnfutil v" + version)
		u.PrintUsage()
		os.Exit(0)
	}

	if command == nil || *command == "" || path == nil || *path == "" {
		u.PrintError(fmt.Errorf("a <command> and a <path> must be provided"))
		os.Exit(1)
	}

	useColor := term.IsTerminal(int(os.Stderr.Fd()))
	log := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.VerbosityFromFlags(*debug, *trace), useColor))

	opts := []options.Option{
		options.WithLogger(log.Logr()),
		options.WithStripVersionInfo(*strip),
	}
	if *lf {
		opts = append(opts, options.WithLineEnding("\n"))
	}

	cli := &app{
		out:     os.Stdout,
		log:     log,
		opts:    opts,
		yaml:    *asYAML,
		spinner: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := cli.run(*command, *path); err != nil {
		log.Error(err, "command failed", "command", *command, "path", *path)
		os.Exit(1)
	}
}
