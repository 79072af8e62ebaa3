package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaspel63/splitClass/internal/ui"
)

var (
	serverURL  string
	roomName   string
	stunServer string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "splitclass",
	Short: "Diagnostic client for the SplitClass signaling relay",
	Long: `splitclass joins a classroom room as either the teacher or a student and
runs a real WebRTC negotiation through the relay, which makes it easy to
verify a deployment end to end without a browser.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "ws://localhost:3000/ws",
		"signaling server websocket URL")
	rootCmd.PersistentFlags().StringVar(&roomName, "room", "",
		"room name (required)")
	rootCmd.PersistentFlags().StringVar(&stunServer, "stun", "stun:stun.l.google.com:19302",
		"STUN server URL")
}
