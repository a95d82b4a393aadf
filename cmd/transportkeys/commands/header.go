package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
	"transportkeys/internal/protocol/transport"
)

func headerCmd() *cobra.Command {
	var (
		keyText, frameKeyText, decode string
		stream                        int64
		version                       int
	)
	cmd := &cobra.Command{
		Use:         "header",
		Short:       "Encrypt a stream header, or decrypt one with --decode",
		Annotations: map[string]string{offline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.ParseSecretKey(keyText)
			if err != nil {
				return err
			}
			defer key.Wipe()

			if decode != "" {
				raw, err := base64.StdEncoding.DecodeString(decode)
				if err != nil {
					return fmt.Errorf("header is not base64: %w", err)
				}
				h, err := transport.DecodeStreamHeader(key, raw)
				if err != nil {
					return err
				}
				fmt.Printf("Version: %d\nStream: %d\nFrame key: %s\n",
					h.ProtocolVersion, h.StreamNumber, crypto.KeyFingerprint(h.FrameKey))
				return nil
			}

			var frameKey domain.SecretKey
			if frameKeyText == "" {
				frameKey, err = crypto.NewSecretKey()
			} else {
				frameKey, err = crypto.ParseSecretKey(frameKeyText)
			}
			if err != nil {
				return err
			}
			defer frameKey.Wipe()

			h, err := transport.EncodeStreamHeader(key, version, stream, frameKey)
			if err != nil {
				return err
			}
			fmt.Println(crypto.B64(h))
			return nil
		},
	}
	cmd.Flags().StringVar(&keyText, "key", "", "header key, hex or base64")
	cmd.Flags().StringVar(&frameKeyText, "frame-key", "", "frame key to wrap (random if empty)")
	cmd.Flags().StringVar(&decode, "decode", "", "base64 header to decrypt")
	cmd.Flags().Int64Var(&stream, "stream", 0, "stream number")
	cmd.Flags().IntVar(&version, "version", transport.ProtocolVersion, "protocol version")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
