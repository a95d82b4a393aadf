package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Rotate all stored key sets to the current time period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Keys.RotateAll(); err != nil {
				return err
			}
			fmt.Printf("Rotated %d key sets to period %d\n", len(wire.Keys.KeySets()), wire.Keys.CurrentTimePeriod())
			return nil
		},
	}
}
