package rw

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/snadboy/sbnotion/src/generator"
	"github.com/snadboy/sbnotion/src/utils"
)

const (
	METADATA_FILE_SUFFIX = ".meta.json"
	FILE_PERM            = 0644
)

type FileReaderWriter struct {
	baseDirPath   string
	fileExtension string
	writtenFiles  []string
}

// GetFileReaderWriter returns a ReaderWriter rooted at basePath,
// writing source files with the given extension.
func GetFileReaderWriter(basePath string, fileExtension string,
	createDirIfNotExist bool) (ReaderWriter, error) {
	err := utils.CheckIfDirExists(basePath)
	if err != nil {
		if !createDirIfNotExist {
			return nil, err
		}

		err = utils.CreateDirectory(basePath)
		if err != nil {
			return nil, err
		}
	}

	return &FileReaderWriter{
		baseDirPath:   basePath,
		fileExtension: fileExtension,
	}, nil
}

func (rw *FileReaderWriter) writeData(ctx context.Context,
	dataBytes []byte, filePath string) (DataIdentifier, error) {
	err := os.WriteFile(filePath, dataBytes, FILE_PERM)
	if err != nil {
		return "", err
	}

	rw.writtenFiles = append(rw.writtenFiles, filePath)
	return DataIdentifier(filePath), nil
}

// WriteGeneratedFile writes a generated source file for the given file
// stem.
func (rw *FileReaderWriter) WriteGeneratedFile(ctx context.Context,
	name string, source []byte) (DataIdentifier, error) {
	if len(source) == 0 {
		return "", errors.New("empty source received for generated file")
	}

	filePath := filepath.Join(rw.baseDirPath, name+rw.fileExtension)
	return rw.writeData(ctx, source, filePath)
}

// WriteMetadata writes the metadata sidecar for the given file stem.
func (rw *FileReaderWriter) WriteMetadata(ctx context.Context, name string,
	metadata *generator.Metadata) (DataIdentifier, error) {
	if metadata == nil {
		return "", errors.New("nullptr received for metadata object")
	}

	dataBytes, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(rw.baseDirPath, name+METADATA_FILE_SUFFIX)
	return rw.writeData(ctx, dataBytes, filePath)
}

// ReadMetadata loads a previously written metadata sidecar. A missing
// sidecar is not an error; it returns nil metadata.
func (rw *FileReaderWriter) ReadMetadata(ctx context.Context,
	name string) (*generator.Metadata, error) {
	filePath := filepath.Join(rw.baseDirPath, name+METADATA_FILE_SUFFIX)

	dataBytes, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	metadata := &generator.Metadata{}
	err = json.Unmarshal(dataBytes, metadata)
	if err != nil {
		return nil, err
	}
	return metadata, nil
}

// CleanUp removes every file written through this instance.
func (rw *FileReaderWriter) CleanUp(ctx context.Context) error {
	for _, filePath := range rw.writtenFiles {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	rw.writtenFiles = nil
	return nil
}
