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

var teacherCmd = &cobra.Command{
	Use:   "teacher",
	Short: "Join a room as the teacher and negotiate with each student",
	RunE: func(cmd *cobra.Command, args []string) error {
		if roomName == "" {
			return errors.New("--room is required")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		ui.PrintTitle("SplitClass teacher probe")
		return probe.RunTeacher(ctx, serverURL, roomName, stunServer)
	},
}

func init() {
	rootCmd.AddCommand(teacherCmd)
}
