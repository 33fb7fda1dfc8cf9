package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/snadboy/sbnotion/src/config"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the Notion databases visible to the integration",
	Long: "List id, title and property count of every Notion database " +
		"shared with the integration.",
	RunE: ListDatabases,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&nameFilter, "filter", "",
		"Only list databases whose title contains the given string")
}

func ListDatabases(cmd *cobra.Command, args []string) error {
	validateNonEmptyNotionToken()

	log, err := getLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}

	cfg := &config.Config{
		Token:          notionToken,
		Operation_Type: config.LIST,
		NameFilter:     nameFilter,
	}

	ctx := log.WithContext(context.Background())

	return cfg.Execute(ctx, config.Initialize)
}
