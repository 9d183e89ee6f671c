package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hengadev/cfgx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "cfgx %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// run executes one command. It is separate from main so commands can be tested
// without exiting the process.
func run(command string, args []string, stdin io.Reader, stdout io.Writer) error {
	switch command {
	case "inspect":
		return inspectCommand(args, stdin, stdout)
	case "validate":
		return validateCommand(args, stdout)
	case "init":
		return initCommand(args, stdout)
	case "get":
		return getCommand(args, stdout)
	case "put":
		return putCommand(args, stdin, stdout)
	case "list":
		return listCommand(args, stdout)
	case "delete":
		return deleteCommand(args, stdout)
	case "version":
		fmt.Fprintln(stdout, cfgx.VersionInfo())
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: cfgx <command> [options]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  inspect   Print the node tree of a YAML document\n")
	fmt.Fprintf(w, "  validate  Validate a cfgx configuration file\n")
	fmt.Fprintf(w, "  init      Write a default configuration file\n")
	fmt.Fprintf(w, "  get       Print a document from a SQLite document store\n")
	fmt.Fprintf(w, "  put       Store a YAML document in a SQLite document store\n")
	fmt.Fprintf(w, "  list      List the documents of a SQLite document store\n")
	fmt.Fprintf(w, "  delete    Remove a document from a SQLite document store\n")
	fmt.Fprintf(w, "  version   Show version information\n")
	fmt.Fprintf(w, "\nRun 'cfgx <command> -h' for help on a specific command.\n")
}

func validateCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	configPath := fs.String("config", "cfgx.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := cfgx.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if _, err := cfgx.New(cfgx.WithConfig(cfg)); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ %s is valid (maxDepth=%d, detectCycles=%t, logLevel=%s, logFormat=%s)\n",
		*configPath, cfg.MaxDepth, cfg.DetectCycles, cfg.LogLevel, cfg.LogFormat)
	return nil
}

func initCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	configPath := fs.String("config", "cfgx.yaml", "Path to configuration file")
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*configPath); err == nil {
			return fmt.Errorf("configuration file %s already exists, use -force to overwrite", *configPath)
		}
	}
	if err := cfgx.WriteConfig(*configPath, cfgx.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Configuration file %s created\n", *configPath)
	return nil
}
