package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"transportkeys/internal/statusapi"
)

func statusCmd() *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List key sets",
		// --remote reads from a daemon, which holds the store open.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if remote != "" {
				return nil
			}
			return cmd.Root().PersistentPreRunE(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sets []statusapi.KeySetStatus
				err  error
			)
			if remote != "" {
				sets, err = statusapi.NewClient(remote).KeySets(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				sets = statusapi.Summarise(wire.Keys.KeySets())
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCONTACT\tTRANSPORT\tVARIANT\tPERIOD\tACTIVE\tSTREAMS\tOUT TAG\tIN TAG\tUPDATED")
			for _, s := range sets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%t\t%d\t%s\t%s\t%s\n",
					s.ID, s.ContactID, s.TransportID, s.Variant, s.TimePeriod, s.Active,
					s.OutgoingStreamCounter, s.OutgoingTag, s.IncomingTag,
					time.Unix(s.UpdatedUTC, 0).UTC().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "daemon base URL, e.g. http://127.0.0.1:9464")
	return cmd
}
