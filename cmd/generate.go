package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/snadboy/sbnotion/src/config"
	"github.com/spf13/cobra"
)

var databaseUUIDs []string
var nameFilter string
var outputDir string
var createDir bool
var force bool
var packageName string

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate typed Go structs from Notion database schemas",
	Long: "Generate one Go source file per Notion database shared with " +
		"the integration, with a metadata sidecar that lets later runs " +
		"skip databases whose schema has not changed.",
	RunE: GenerateClasses,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringArrayVar(&databaseUUIDs, "database",
		make([]string, 0),
		"Database UUIDs for which classes need to be generated")
	generateCmd.Flags().StringVar(&nameFilter, "filter", "",
		"Only generate classes for databases whose title contains the "+
			"given string")
	generateCmd.Flags().StringVarP(&outputDir, "output-dir", "d",
		"generated", "directory to write generated files to")
	generateCmd.MarkFlagDirname("output-dir")
	generateCmd.Flags().BoolVar(&createDir, "create-dir", false,
		"Create output directory if not exists")
	generateCmd.Flags().BoolVar(&force, "force", false,
		"Regenerate even if the schema has not changed")
	generateCmd.Flags().StringVar(&packageName, "package", "generated",
		"package name of the generated source files")
}

func GenerateClasses(cmd *cobra.Command, args []string) error {
	validateNonEmptyNotionToken()

	log, err := getLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}

	cfg := &config.Config{
		Token:          notionToken,
		Operation_Type: config.GENERATE,
		DatabaseUUIDs:  databaseUUIDs,
		NameFilter:     nameFilter,
		OutputDir:      outputDir,
		Create_Dir:     createDir,
		Force:          force,
		PackageName:    packageName,
	}

	ctx := log.WithContext(context.Background())

	return cfg.Execute(ctx, config.Initialize)
}
