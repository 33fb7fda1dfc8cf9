package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/snadboy/sbnotion/src/notion"
)

func ReadJsonFile(filePath string) ([]byte, error) {
	byteValue, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return byteValue, nil
}

func ParsePageJsonString(jsonBytes []byte) (*notion.Page, error) {
	page := &notion.Page{}
	err := json.Unmarshal(jsonBytes, &page)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func ParseSearchResponseJsonString(jsonBytes []byte) (*notion.SearchResponse, error) {
	searchResponse := &notion.SearchResponse{}
	err := json.Unmarshal(jsonBytes, &searchResponse)
	if err != nil {
		return nil, err
	}
	return searchResponse, nil
}

func ParseDatabaseJsonString(jsonBytes []byte) (*notion.Database, error) {
	database := &notion.Database{}
	err := json.Unmarshal(jsonBytes, &database)
	if err != nil {
		return nil, err
	}
	return database, nil
}

func CheckIfDirExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dirPath)
	}
	return nil
}

func CreateDirectory(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}
