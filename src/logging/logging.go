package logging

const (
	DatabaseUUID        = "Database UUID"
	DatabaseTitle       = "Database Title"
	OutputPath          = "Output Path"
	SchemaHash          = "Schema Hash"
	ValidationErr       = "Failed to validate config"
	DatabaseFetchErr    = "Failed to fetch Database(s)"
	SchemaDescriptorErr = "Failed to build schema descriptor"
	CodeGenerationErr   = "Failed to generate source code"
	GeneratedFileErr    = "Failed to write generated file"
	MetadataReadErr     = "Failed to read metadata sidecar"
	MetadataWriteErr    = "Failed to write metadata sidecar"
)
