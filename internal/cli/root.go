package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPI = "http://localhost:3000"

// Execute runs the swift CLI and returns the process exit code
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var api string

	rootCmd := &cobra.Command{
		Use:           "swift",
		Short:         "Operate the swift users API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	envAPI := os.Getenv("SWIFT_API")
	if envAPI == "" {
		envAPI = defaultAPI
	}
	rootCmd.PersistentFlags().StringVar(&api, "api", envAPI, "API base URL (env SWIFT_API)")

	client := &apiClient{}
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		client.baseURL = api
		return nil
	}

	rootCmd.AddCommand(newLoadCmd(client))
	rootCmd.AddCommand(newGetCmd(client))
	rootCmd.AddCommand(newDeleteCmd(client))
	rootCmd.AddCommand(newClearCmd(client))
	rootCmd.AddCommand(newCreateCmd(client))

	return rootCmd
}
