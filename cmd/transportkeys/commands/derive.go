package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
)

func deriveCmd() *cobra.Command {
	var (
		contact, transportID, rootHex string
		alice, static, active         bool
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive and store a key set from a shared root key",
		RunE: func(cmd *cobra.Command, args []string) error {
			var root domain.SecretKey
			if rootHex == "" {
				k, err := crypto.NewSecretKey()
				if err != nil {
					return err
				}
				root = k
				text, _ := root.MarshalText()
				fmt.Printf("Generated root key: %s\n", text)
			} else {
				k, err := crypto.ParseSecretKey(rootHex)
				if err != nil {
					return err
				}
				root = k
			}
			defer root.Wipe()

			var (
				id  domain.KeySetID
				err error
			)
			if static {
				id, err = wire.Keys.AddStaticContact(domain.ContactID(contact), domain.TransportID(transportID), root, alice)
			} else {
				id, err = wire.Keys.AddContact(domain.ContactID(contact), domain.TransportID(transportID), root, alice, active)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Key set: %s\n", id)
			for _, ks := range wire.Keys.KeySets() {
				if ks.ID != id {
					continue
				}
				w := ks.Window()
				fmt.Printf("Period: %d\n", w.TimePeriod())
				fmt.Printf("Active: %t\n", w.CurrentOutgoing.Active)
				fmt.Printf("Outgoing tag key: %s\n", crypto.KeyFingerprint(w.CurrentOutgoing.TagKey))
				fmt.Printf("Incoming tag key: %s\n", crypto.KeyFingerprint(w.CurrentIncoming.TagKey))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contact, "contact", "", "contact identifier")
	cmd.Flags().StringVar(&transportID, "transport", "", "transport identifier, e.g. lan")
	cmd.Flags().StringVar(&rootHex, "root", "", "shared root key, hex or base64 (random if empty)")
	cmd.Flags().BoolVar(&alice, "alice", false, "take the Alice role")
	cmd.Flags().BoolVar(&static, "static", false, "derive static keys recomputable from the root key")
	cmd.Flags().BoolVar(&active, "active", false, "allow sending immediately (ephemeral keys only)")
	_ = cmd.MarkFlagRequired("contact")
	_ = cmd.MarkFlagRequired("transport")
	return cmd
}
