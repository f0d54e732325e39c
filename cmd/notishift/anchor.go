package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notishift/notishift/internal/control"
	"github.com/notishift/notishift/internal/geometry"
)

var anchorCmd = &cobra.Command{
	Use:   "anchor [position]",
	Short: "Show or set the notification anchor",
	Long: `Show or set the screen anchor notifications are moved to.

Without an argument the current anchor is printed. With an argument the
daemon switches to the new anchor, repositions all visible notifications,
and persists the selection across restarts.

Valid positions form a 3x3 grid:

  top-left      top-center      top-right
  middle-left   middle-center   middle-right
  bottom-left   bottom-center   bottom-right

"top-right" is the OS default: the daemon leaves notifications untouched.

Examples:
  # Print the current anchor
  notishift anchor

  # Move notifications to the bottom-right corner
  notishift anchor bottom-right

  # Hand placement back to the OS
  notishift anchor top-right`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnchor,
}

func init() {
	rootCmd.AddCommand(anchorCmd)
}

func runAnchor(cmd *cobra.Command, args []string) error {
	client, err := control.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if len(args) == 0 {
		anchor, err := client.GetAnchor()
		if err != nil {
			return err
		}
		fmt.Println(anchor)
		return nil
	}

	anchor, err := geometry.ParseAnchor(args[0])
	if err != nil {
		return err
	}
	if err := client.SetAnchor(string(anchor)); err != nil {
		return err
	}
	fmt.Printf("anchor set to %s\n", anchor)
	return nil
}
