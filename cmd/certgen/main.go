package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(realMain(os.Args[1:], DefaultEnv()))
}

// realMain dispatches to a subcommand and returns the process exit code.
func realMain(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "generate":
		return runGenerateCmd(args[1:], env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "cleanup":
		return runCleanupCmd(env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "certgen %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[1:], env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}
