package commands

import (
	"github.com/spf13/cobra"

	"transportkeys/internal/app"
)

// offline marks commands that do not touch the key set store.
const offline = "offline"

var (
	cfg  = app.DefaultConfig()
	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:          "transportkeys",
		Short:        "Derive, rotate and inspect transport keys",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[offline] == "true" {
				return nil
			}
			if err := cfg.Resolve(); err != nil {
				return err
			}
			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Home, "home", "", "data dir (default $"+app.EnvHome+" or ~/.transportkeys)")
	pf.StringVarP(&cfg.Passphrase, "passphrase", "p", "", "passphrase sealing the key set file (default $"+app.EnvPassphrase+")")
	pf.StringVar(&cfg.Store, "store", cfg.Store, "key set store: file or bolt")
	pf.DurationVar(&cfg.PeriodLength, "period", cfg.PeriodLength, "length of one time period")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(deriveCmd(), rotateCmd(), tagCmd(), headerCmd(), statusCmd(), daemonCmd())
	return root.Execute()
}
