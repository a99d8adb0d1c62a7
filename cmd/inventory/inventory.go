package inventory

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/flowscan/internal/auth"
	"github.com/scan-io-git/flowscan/internal/config"
	flowinventory "github.com/scan-io-git/flowscan/internal/inventory"
	"github.com/scan-io-git/flowscan/internal/powerautomate"
	"github.com/scan-io-git/flowscan/pkg/shared/errors"
	"github.com/scan-io-git/flowscan/pkg/shared/files"
	"github.com/scan-io-git/flowscan/pkg/shared/httpclient"
)

// RunOptionsInventory holds the arguments of the inventory command.
type RunOptionsInventory struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Scope        string
	Authority    string
	APIBaseURL   string
	OutputPath   string
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	logger           hclog.Logger
	inventoryOptions RunOptionsInventory

	exampleInventoryUsage = `  # Inventory flows with credentials from config.yml or FLOWSCAN_* environment variables
  flowscan inventory

  # Inventory flows with explicit credentials
  flowscan inventory --tenant-id contoso.onmicrosoft.com --client-id 00000000-0000-0000-0000-000000000000 --client-secret $SECRET

  # Save the inventory as JSON
  flowscan inventory -o /path/to/flows.json`
)

// InventoryCmd represents the inventory command.
var InventoryCmd = &cobra.Command{
	Use:                   "inventory [--tenant-id ID --client-id ID --client-secret SECRET] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleInventoryUsage,
	Short:                 "List every flow of every environment",
	Long: `Acquire an access token with the client-credentials grant, list the environments
visible to the application and list the flows of each environment.

The last run time of a flow is not queried and is always reported as "Unknown".`,
	RunE: runInventoryCommand,
}

// Init initializes the global configuration and logger of the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runInventoryCommand(cmd *cobra.Command, args []string) error {
	if err := validateInventoryArgs(&inventoryOptions, args); err != nil {
		logger.Error("invalid inventory arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid inventory arguments: %w", err), 1)
	}

	creds, paConfig := mergeOptions(AppConfig, &inventoryOptions)
	if err := config.ValidateCredentials(creds); err != nil {
		logger.Error("invalid configuration", "error", err)
		return errors.NewCommandError(err, 1)
	}
	if err := config.ValidatePowerAutomateConfig(&paConfig); err != nil {
		logger.Error("invalid configuration", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid endpoint configuration: %w", err), 1)
	}

	httpClient, err := httpclient.New(logger.Named("http"), AppConfig)
	if err != nil {
		logger.Error("failed to initialize HTTP client", "error", err)
		return errors.NewCommandError(err, 1)
	}

	acquirer := auth.NewAcquirer(httpClient, paConfig.Authority, logger.Named("auth"))
	connect := func(token auth.AccessToken) *powerautomate.Client {
		return powerautomate.New(httpClient, paConfig.APIBaseURL, token, logger.Named("api"))
	}

	runner := flowinventory.NewRunner(creds, acquirer, connect, logger)
	result, runErr := runner.Run(cmd.Context())
	if runErr != nil {
		logger.Error("inventory command failed", "state", result.State, "error", runErr)
		return errors.NewCommandError(fmt.Errorf("inventory command failed: %w", runErr), 2)
	}
	if result.State == flowinventory.StateFailedAuth {
		logger.Warn("inventory command finished without an access token, nothing to report")
		return nil
	}

	flowinventory.Emit(logger, result.Inventory)

	if inventoryOptions.OutputPath != "" {
		data, err := result.Inventory.MarshalIndent()
		if err != nil {
			return fmt.Errorf("error marshaling the result data: %w", err)
		}
		if err := files.WriteJsonFile(inventoryOptions.OutputPath, data); err != nil {
			logger.Error("failed to write result", "error", err)
			return errors.NewCommandError(err, 1)
		}
		logger.Info("results saved to file", "path", inventoryOptions.OutputPath)
	}

	logger.Info("inventory command completed successfully")
	logger.Info("statistic",
		"number_environments", len(result.Environments),
		"number_flows", len(result.Inventory),
		"number_failures", len(result.Absorbed),
	)
	return nil
}

// mergeOptions resolves credentials and endpoints. Flags take precedence over
// environment variables, which take precedence over the config file.
func mergeOptions(cfg *config.Config, options *RunOptionsInventory) (config.Credentials, config.PowerAutomate) {
	creds := config.Credentials{
		TenantID:     config.SetThen(options.TenantID, cfg.Credentials.TenantID),
		ClientID:     config.SetThen(options.ClientID, cfg.Credentials.ClientID),
		ClientSecret: config.SetThen(options.ClientSecret, cfg.Credentials.ClientSecret),
		Scope:        config.SetThen(options.Scope, cfg.Credentials.Scope),
	}
	paConfig := config.PowerAutomate{
		Authority:  config.SetThen(options.Authority, cfg.PowerAutomate.Authority),
		APIBaseURL: config.SetThen(options.APIBaseURL, cfg.PowerAutomate.APIBaseURL),
	}
	return creds, paConfig
}

func init() {
	InventoryCmd.Flags().StringVar(&inventoryOptions.TenantID, "tenant-id", "", "Directory (tenant) ID or domain of the application registration.")
	InventoryCmd.Flags().StringVar(&inventoryOptions.ClientID, "client-id", "", "Application (client) ID.")
	InventoryCmd.Flags().StringVar(&inventoryOptions.ClientSecret, "client-secret", "", "Client secret of the application.")
	InventoryCmd.Flags().StringVar(&inventoryOptions.Scope, "scope", "", "Scope requested for the access token.")
	InventoryCmd.Flags().StringVar(&inventoryOptions.Authority, "authority", "", "Identity provider host used to request tokens.")
	InventoryCmd.Flags().StringVar(&inventoryOptions.APIBaseURL, "api-base-url", "", "Base URL of the environments collection of the flow API.")
	InventoryCmd.Flags().StringVarP(&inventoryOptions.OutputPath, "output", "o", "", "Path to the output file where the inventory will be saved as JSON.")
	InventoryCmd.Flags().BoolP("help", "h", false, "Show help for the inventory command.")
}
