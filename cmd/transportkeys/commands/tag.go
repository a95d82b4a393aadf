package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"transportkeys/internal/crypto"
	"transportkeys/internal/protocol/transport"
)

func tagCmd() *cobra.Command {
	var (
		keyText string
		stream  int64
		version int
	)
	cmd := &cobra.Command{
		Use:         "tag",
		Short:       "Compute the tag of one stream",
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.ParseSecretKey(keyText)
			if err != nil {
				return err
			}
			defer key.Wipe()

			tag := make([]byte, transport.TagLength)
			c := transport.New(crypto.Blake2bDeriver{})
			if err := c.EncodeTag(tag, key, version, stream); err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&keyText, "key", "", "tag key, hex or base64")
	cmd.Flags().Int64Var(&stream, "stream", 0, "stream number")
	cmd.Flags().IntVar(&version, "version", transport.ProtocolVersion, "protocol version")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
