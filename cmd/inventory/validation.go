package inventory

import (
	"fmt"
	"os"
)

// validateInventoryArgs validates the arguments provided to the inventory command.
func validateInventoryArgs(options *RunOptionsInventory, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the inventory command takes no positional arguments")
	}

	if options.OutputPath != "" {
		if info, err := os.Stat(options.OutputPath); err == nil && info.IsDir() {
			return fmt.Errorf("the 'output' flag must point to a file, %q is a directory", options.OutputPath)
		}
	}

	return nil
}
