package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┬ ┬┌┬┐┌┬┐┬
   ││├─┤ │ ││││
  ─┴┘┴ ┴ ┴ ┴ ┴┴─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "dhtml",
		Short: "Reactive binding demos over WebSocket",
		Long: `dhtml serves a small set of reactive binding demos.

Each browser session gets its own set of cells on the server.
Edits travel up as JSON ops, derived values travel back down
as sink writes. Demos:

  • checkboxes  — derived state: panel style follows all-checked
  • multipliers — cascading fan-out from a shared factor
  • synchro     — peer-synchronized text inputs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		initCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
