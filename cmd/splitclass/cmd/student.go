package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bjaspel63/splitClass/internal/probe"
	"github.com/bjaspel63/splitClass/internal/ui"
)

var studentName string

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Join a room as a student and answer the teacher's offer",
	RunE: func(cmd *cobra.Command, args []string) error {
		if roomName == "" {
			return errors.New("--room is required")
		}
		if studentName == "" {
			return errors.New("--name is required")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		ui.PrintTitle("SplitClass student probe")
		return probe.RunStudent(ctx, serverURL, roomName, studentName, stunServer)
	},
}

func init() {
	studentCmd.Flags().StringVar(&studentName, "name", "", "display name (required)")
	rootCmd.AddCommand(studentCmd)
}
