package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CalebEverett/arloader/src/utils/config"
	"github.com/CalebEverett/arloader/src/utils/logger"
)

var (
	RootCmd = &cobra.Command{
		Use:   "arloader",
		Short: "Upload files to Arweave, in bundles or one transaction per file",

		// All child commands will use this
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			// Setup a context that gets cancelled upon SIGINT
			ctx, cancel = context.WithCancel(context.Background())

			signalChannel = make(chan os.Signal, 1)
			signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
			go func() {
				select {
				case <-signalChannel:
					cancel()
				case <-ctx.Done():
				}
			}()

			// Load configuration
			conf, err = config.Load(cfgFile)
			if err != nil {
				return
			}

			// Flags win over env vars and the config file
			if cmd.Flags().Changed("base-url") {
				conf.Arweave.BaseUrl = flagBaseUrl
			}
			if cmd.Flags().Changed("ar-keypair-path") {
				conf.Arweave.KeypairPath = flagArKeypairPath
			}
			if cmd.Flags().Changed("sol-keypair-path") {
				conf.Solana.KeypairPath = flagSolKeypairPath
			}

			// Setup logging
			err = logger.Init(conf)
			if err != nil {
				return
			}
			return
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			signal.Stop(signalChannel)
			cancel()
		},
		SilenceUsage: true,
	}

	// Configuration
	conf    *config.Config
	cfgFile string

	// Persistent flags
	flagBaseUrl          string
	flagArKeypairPath    string
	flagSolKeypairPath   string
	flagArDefaultKeypair bool

	// Context setup
	ctx           context.Context
	cancel        context.CancelFunc
	signalChannel chan os.Signal
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file path")
	RootCmd.PersistentFlags().StringVar(&flagBaseUrl, "base-url", "", "Arweave gateway base url")
	RootCmd.PersistentFlags().StringVar(&flagArKeypairPath, "ar-keypair-path", "", "path to the Arweave JWK wallet file")
	RootCmd.PersistentFlags().StringVar(&flagSolKeypairPath, "sol-keypair-path", "", "path to the Solana keypair file")
	RootCmd.PersistentFlags().BoolVar(&flagArDefaultKeypair, "ar-default-keypair", false, "use the built-in keypair, only valid together with --with-sol")
}
