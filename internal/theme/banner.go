package theme

import (
	"fmt"
)

// Banner returns the CLI banner.
func Banner() string {
	const cyan = "\033[36m"
	const yellow = "\033[33m"
	const reset = "\033[0m"

	art := "" +
		cyan + "  ╭─────────────────────────────╮\n" + reset +
		cyan + "  │        L I S T L E N S      │\n" + reset +
		cyan + "  ╰─────────────────────────────╯\n" + reset +
		yellow + "   a lens on your X lists\n" + reset
	return art
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
