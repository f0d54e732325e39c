package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notishift/notishift/internal/control"
)

var reprocessCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Reposition all visible notifications now",
	Long: `Ask the daemon to re-run repositioning across every currently-visible
notification window. Useful after a monitor change or when a notification
was left behind by a desktop animation.`,
	RunE: runReprocess,
}

func init() {
	rootCmd.AddCommand(reprocessCmd)
}

func runReprocess(cmd *cobra.Command, args []string) error {
	client, err := control.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Reprocess(); err != nil {
		return err
	}
	fmt.Println("reprocess requested")
	return nil
}
