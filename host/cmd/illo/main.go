// Command illo is the host-side companion for the ring light toys: a
// USB console monitor, a multi-toy simulator, a terminal follower and
// frame tooling.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"illo/protocol"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "illo",
		Short: "Host tools for the illo ring lights",
		Long: `illo talks to the LED ring toys from a laptop: stream a toy's USB
console, simulate a whole dance floor in the terminal, follow a real
leader's broadcasts, and poke at sync frames by hand.`,
		Version:      protocol.Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMonitorCommand())
	rootCmd.AddCommand(newSimCommand())
	rootCmd.AddCommand(newFollowCommand())
	rootCmd.AddCommand(newFrameCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
