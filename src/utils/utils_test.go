package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snadboy/sbnotion/src/notion"
	"github.com/snadboy/sbnotion/src/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TEST_DATA_PATH = "./../../testdata/"
)

func TestReadJsonFile(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		jsonBytes, err := utils.ReadJsonFile(TEST_DATA_PATH + "page.json")
		assert.NoError(t, err)
		assert.NotEmpty(t, jsonBytes)
	})

	t.Run("missing file", func(t *testing.T) {
		jsonBytes, err := utils.ReadJsonFile(TEST_DATA_PATH +
			"no_such_file.json")
		assert.Error(t, err)
		assert.Nil(t, jsonBytes)
	})
}

func TestParsePageJsonString(t *testing.T) {
	jsonBytes, err := utils.ReadJsonFile(TEST_DATA_PATH + "page.json")
	require.NoError(t, err)

	page, err := utils.ParsePageJsonString(jsonBytes)
	require.NoError(t, err)
	assert.Equal(t, notion.ObjectTypePage, page.Object)
	assert.Equal(t, "Write report", page.PlainTitle())

	_, err = utils.ParsePageJsonString([]byte("{invalid"))
	assert.Error(t, err)
}

func TestParseDatabaseJsonString(t *testing.T) {
	jsonBytes, err := utils.ReadJsonFile(TEST_DATA_PATH + "database.json")
	require.NoError(t, err)

	database, err := utils.ParseDatabaseJsonString(jsonBytes)
	require.NoError(t, err)
	assert.Equal(t, notion.ObjectTypeDatabase, database.Object)
	assert.Equal(t, "Task Tracker", database.PlainTitle())
	assert.Len(t, database.Properties, 8)

	_, err = utils.ParseDatabaseJsonString([]byte("{invalid"))
	assert.Error(t, err)
}

func TestParseSearchResponseJsonString(t *testing.T) {
	jsonBytes, err := utils.ReadJsonFile(TEST_DATA_PATH +
		"search_mixed.json")
	require.NoError(t, err)

	resp, err := utils.ParseSearchResponseJsonString(jsonBytes)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)

	_, err = utils.ParseSearchResponseJsonString([]byte("{invalid"))
	assert.Error(t, err)
}

func TestCheckIfDirExists(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		assert.NoError(t, utils.CheckIfDirExists(t.TempDir()))
	})

	t.Run("missing directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")
		assert.Error(t, utils.CheckIfDirExists(missing))
	})

	t.Run("regular file", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))
		assert.Error(t, utils.CheckIfDirExists(filePath))
	})
}

func TestCreateDirectory(t *testing.T) {
	dirPath := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, utils.CreateDirectory(dirPath))
	assert.NoError(t, utils.CheckIfDirExists(dirPath))

	// Creating an existing directory is not an error.
	assert.NoError(t, utils.CreateDirectory(dirPath))
}
