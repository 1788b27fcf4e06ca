package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: certgen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate certificates from a spreadsheet and a template")
	fmt.Fprintln(w, "  doctor     Check that the rendering engine and environment are ready")
	fmt.Fprintln(w, "  cleanup    Remove stray engine processes and leftover temp files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'certgen help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: certgen generate [source.xlsx] [template] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one PDF certificate per spreadsheet row.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -s, --source <path>       Participant spreadsheet (.xlsx)")
	fmt.Fprintln(w, "  -t, --template <path>     Certificate template (.html or .md)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mapping:")
	fmt.Fprintln(w, "      --name-column <s>     Column holding the NAME value (header text or letter)")
	fmt.Fprintln(w, "      --date-column <s>     Column holding the DATE value")
	fmt.Fprintln(w, "      --map <K=V>           Extra placeholder mapping (repeatable)")
	fmt.Fprintln(w, "      --date-format <s>     DATE rendering format (tokens: YYYY, MMMM, MMM, MM, DD, D)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Empty cells:")
	fmt.Fprintln(w, "      --policy <s>          stop (default), skip, or default")
	fmt.Fprintln(w, "      --default <K=V>       Fallback value for the default policy (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --font-family <s>     Font family for substituted text")
	fmt.Fprintln(w, "      --font-size <f>       Font size in points")
	fmt.Fprintln(w, "      --font-bold           Render substituted text bold")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --sort-by <s>         Group output into subfolders by a placeholder's value")
	fmt.Fprintln(w, "      --orientation <s>     portrait or landscape")
	fmt.Fprintln(w, "      --mode <s>            Export mode: native or raster")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --save-config         Persist the effective settings for the next run")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: certgen doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that the rendering engine and environment are ready.")
	case "cleanup":
		fmt.Fprintln(env.Stdout, "Usage: certgen cleanup")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Remove stray engine processes and leftover temp files.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: certgen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: certgen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
