package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/notishift/notishift/internal/control"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Long:  `Show the running daemon's anchor, layout calibration and overlay state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := control.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	info, err := client.Status()
	if err != nil {
		return err
	}

	fmt.Printf("anchor:          %s\n", info.Anchor)
	fmt.Printf("calibrated:      %v\n", info.CachePopulated)
	fmt.Printf("overlay visible: %v\n", info.OverlayVisible)

	switch {
	case info.ReassertUntil.IsZero():
		fmt.Println("re-assertion:    idle")
	case info.ReassertUntil.Before(time.Now()):
		fmt.Printf("re-assertion:    expired %s\n", humanize.Time(info.ReassertUntil))
	default:
		fmt.Printf("re-assertion:    open, expires %s\n", humanize.Time(info.ReassertUntil))
	}
	return nil
}
