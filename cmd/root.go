package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/flowscan/cmd/inventory"
	"github.com/scan-io-git/flowscan/cmd/version"
	"github.com/scan-io-git/flowscan/internal/config"
	"github.com/scan-io-git/flowscan/internal/logger"
	sharederrors "github.com/scan-io-git/flowscan/pkg/shared/errors"
)

const defaultConfigFile = "config.yml"

var (
	cfgFile   string
	AppConfig *config.Config
	Logger    hclog.Logger
	rootCmd   = &cobra.Command{
		Use:                   "flowscan [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Flowscan inventories Power Automate flows.",
		Long: `Flowscan authenticates as an application with the OAuth2 client-credentials grant
	and lists every flow of every Power Automate environment the application can see.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml when present)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(inventory.InventoryCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var cmdErr *sharederrors.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	path := cfgFile
	if path == "" {
		if _, statErr := os.Stat(defaultConfigFile); statErr == nil {
			path = defaultConfigFile
		}
	}

	AppConfig, err = config.LoadConfig(path)
	if err != nil {
		fmt.Printf("initializing config file function is crashed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	Logger = logger.NewLogger(AppConfig, "flowscan")
	inventory.Init(AppConfig, Logger.Named("inventory"))
}
