package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordgrid/crossgen/internal/authsvc"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <raw-key>",
	Short: "Hash an operator API key for OPERATOR_API_KEY_HASH",
	Long: `Hash a raw operator API key the same way crossgen serve verifies
incoming Authorization headers, so the result can be stored in
OPERATOR_API_KEY_HASH without ever keeping the raw key in the
environment.`,
	Args: cobra.ExactArgs(1),
	RunE: runHashKey,
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}

func runHashKey(cmd *cobra.Command, args []string) error {
	hash, err := authsvc.HashAPIKey(args[0])
	if err != nil {
		return fmt.Errorf("failed to hash API key: %w", err)
	}
	fmt.Println(hash)
	return nil
}
