package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/snadboy/sbnotion/src/generator"
	"github.com/snadboy/sbnotion/src/logging"
	"github.com/snadboy/sbnotion/src/notion"
	"github.com/snadboy/sbnotion/src/notionclient"
	"github.com/snadboy/sbnotion/src/rw"
	"github.com/snadboy/sbnotion/src/schema"
)

type OperationType string

const (
	UNKNOWN  OperationType = "UNKNOWN"
	GENERATE OperationType = "GENERATE"
	LIST     OperationType = "LIST"
)

type Config struct {
	Token          string
	Operation_Type OperationType
	DatabaseUUIDs  []string
	NameFilter     string
	OutputDir      string
	Create_Dir     bool
	Force          bool
	PackageName    string

	// Injected during Initialize; tests may assign fakes directly.
	NotionClient  notionclient.NotionClient
	ReaderWriter  rw.ReaderWriter
	CodeGenerator generator.Generator
	Out           io.Writer
}

type ConfigOption func(ctx context.Context, c *Config) error

// Initialize wires the default production dependencies into the
// config. It must run after validation since the ReaderWriter needs a
// valid output directory.
func Initialize(ctx context.Context, c *Config) error {
	if c.NotionClient == nil {
		c.NotionClient = notionclient.GetNotionApiClient(ctx,
			notion.Token(c.Token), notion.GetClient)
	}

	if c.CodeGenerator == nil {
		c.CodeGenerator = generator.GetGoGenerator(c.PackageName)
	}

	if c.ReaderWriter == nil && c.Operation_Type == GENERATE {
		readerWriter, err := rw.GetFileReaderWriter(c.OutputDir,
			c.CodeGenerator.FileExtension(), c.Create_Dir)
		if err != nil {
			return err
		}
		c.ReaderWriter = readerWriter
	}

	if c.Out == nil {
		c.Out = os.Stdout
	}

	return nil
}

func validateUUIDs(objectType string, uuidList []string) error {
	for _, objectUUID := range uuidList {
		if _, err := uuid.Parse(objectUUID); err != nil {
			return fmt.Errorf("invalid %s UUID: %s", objectType, objectUUID)
		}
	}
	return nil
}

func (c *Config) validateGenerateConfig() error {
	if c.Token == "" {
		return fmt.Errorf("notion secret token not provided")
	}

	if c.OutputDir == "" {
		c.OutputDir = "generated"
	}

	dir, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return err
	}
	c.OutputDir = dir

	return validateUUIDs("Database", c.DatabaseUUIDs)
}

func (c *Config) validateListConfig() error {
	if c.Token == "" {
		return fmt.Errorf("notion secret token not provided")
	}
	return nil
}

// fetchDatabases pages through every database visible to the
// integration.
func (c *Config) fetchDatabases(ctx context.Context) ([]notion.Database,
	error) {
	databases := []notion.Database{}
	cursor := notion.Cursor("")

	for {
		batch, nextCursor, err := c.NotionClient.GetAllDatabases(ctx, cursor)
		if err != nil {
			return nil, err
		}

		databases = append(databases, batch...)
		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return databases, nil
}

// selectDatabases applies the UUID list or the name filter to the
// fetched databases. An explicit UUID list wins over the name filter.
func (c *Config) selectDatabases(
	databases []notion.Database) []notion.Database {
	if len(c.DatabaseUUIDs) != 0 {
		wanted := make(map[string]bool, len(c.DatabaseUUIDs))
		for _, databaseUUID := range c.DatabaseUUIDs {
			wanted[strings.ToLower(databaseUUID)] = true
		}

		selected := []notion.Database{}
		for _, database := range databases {
			if wanted[strings.ToLower(database.ID.String())] {
				selected = append(selected, database)
			}
		}
		return selected
	}

	if c.NameFilter == "" {
		return databases
	}

	filter := strings.ToLower(c.NameFilter)
	selected := []notion.Database{}
	for _, database := range databases {
		if strings.Contains(strings.ToLower(database.PlainTitle()), filter) {
			selected = append(selected, database)
		}
	}
	return selected
}

// generateDatabase emits code and metadata for one database. It
// returns false when generation was skipped because the schema is
// unchanged.
func (c *Config) generateDatabase(ctx context.Context,
	database notion.Database) (bool, error) {
	log := zerolog.Ctx(ctx)

	// The search endpoint returns truncated schemas; fetch the full
	// database object before hashing.
	fullDatabase, err := c.NotionClient.GetDatabaseByID(ctx,
		notionclient.DatabaseID(database.ID))
	if err != nil {
		return false, err
	}

	descriptor, err := schema.NewDescriptor(fullDatabase)
	if err != nil {
		log.Error().Err(err).Str(logging.DatabaseUUID,
			database.ID.String()).Msg(logging.SchemaDescriptorErr)
		return false, err
	}

	fileStem := generator.FileName(descriptor.Title)

	if !c.Force {
		existing, err := c.ReaderWriter.ReadMetadata(ctx, fileStem)
		if err != nil {
			log.Warn().Err(err).Str(logging.DatabaseUUID,
				descriptor.DatabaseID).Msg(logging.MetadataReadErr)
		} else if existing != nil && existing.SchemaHash == descriptor.Hash {
			return false, nil
		}
	}

	source, err := c.CodeGenerator.Generate(descriptor)
	if err != nil {
		return false, err
	}

	identifier, err := c.ReaderWriter.WriteGeneratedFile(ctx, fileStem,
		source)
	if err != nil {
		log.Error().Err(err).Str(logging.DatabaseUUID,
			descriptor.DatabaseID).Msg(logging.GeneratedFileErr)
		return false, err
	}

	metadata := generator.NewMetadata(descriptor)
	if _, err := c.ReaderWriter.WriteMetadata(ctx, fileStem,
		metadata); err != nil {
		log.Error().Err(err).Str(logging.DatabaseUUID,
			descriptor.DatabaseID).Msg(logging.MetadataWriteErr)
		return false, err
	}

	log.Debug().Str(logging.OutputPath, identifier.String()).
		Str(logging.SchemaHash, descriptor.Hash).
		Msg("Wrote generated file and metadata sidecar")

	return true, nil
}

func (c *Config) executeGenerate(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	databases, err := c.fetchDatabases(ctx)
	if err != nil {
		log.Error().Err(err).Msg(logging.DatabaseFetchErr)
		return err
	}

	selected := c.selectDatabases(databases)
	if len(selected) == 0 {
		log.Warn().Msg("No databases matched the given filters")
		return nil
	}

	var firstErr error
	for _, database := range selected {
		title := database.PlainTitle()

		generated, err := c.generateDatabase(ctx, database)
		if err != nil {
			log.Error().Err(err).Str(logging.DatabaseTitle, title).
				Msg(logging.CodeGenerationErr)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if generated {
			log.Info().Str(logging.DatabaseTitle, title).
				Msg("Generated class for database")
		} else {
			log.Info().Str(logging.DatabaseTitle, title).
				Msg("Schema unchanged, skipping generation")
		}
	}

	return firstErr
}

func (c *Config) executeList(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	databases, err := c.fetchDatabases(ctx)
	if err != nil {
		log.Error().Err(err).Msg(logging.DatabaseFetchErr)
		return err
	}

	for _, database := range c.selectDatabases(databases) {
		fmt.Fprintf(c.Out, "%s\t%s\t%d properties\n",
			database.ID.String(), database.PlainTitle(),
			len(database.Properties))
	}

	return nil
}

func (c *Config) Execute(ctx context.Context, opts ...ConfigOption) error {
	log := zerolog.Ctx(ctx)

	var validationErr error
	switch c.Operation_Type {
	case GENERATE:
		validationErr = c.validateGenerateConfig()
	case LIST:
		validationErr = c.validateListConfig()
	default:
		validationErr = fmt.Errorf("unknown operation type provided: %s",
			c.Operation_Type)
	}

	if validationErr != nil {
		log.Error().Err(validationErr).Msg(logging.ValidationErr)
		return validationErr
	}

	for _, opt := range opts {
		if err := opt(ctx, c); err != nil {
			log.Error().Err(err).Msg(logging.ValidationErr)
			return err
		}
	}

	switch c.Operation_Type {
	case GENERATE:
		log.Info().Msg("Starting code generation")
		return c.executeGenerate(ctx)
	case LIST:
		return c.executeList(ctx)
	}

	return nil
}
