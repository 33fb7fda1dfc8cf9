package generator_test

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/snadboy/sbnotion/src/generator"
	"github.com/snadboy/sbnotion/src/notion"
	"github.com/snadboy/sbnotion/src/schema"
	"github.com/snadboy/sbnotion/src/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TEST_DATA_PATH = "./../../testdata/"
	DATABASE_JSON  = TEST_DATA_PATH + "database.json"
)

func loadDescriptor(t *testing.T) *schema.Descriptor {
	t.Helper()
	jsonBytes, err := utils.ReadJsonFile(DATABASE_JSON)
	require.NoError(t, err)

	database, err := utils.ParseDatabaseJsonString(jsonBytes)
	require.NoError(t, err)

	descriptor, err := schema.NewDescriptor(database)
	require.NoError(t, err)
	return descriptor
}

func generateSource(t *testing.T, packageName string) string {
	t.Helper()
	gen := generator.GetGoGenerator(packageName)
	source, err := gen.Generate(loadDescriptor(t))
	require.NoError(t, err)
	return string(source)
}

func TestGoGeneratorMetadata(t *testing.T) {
	gen := generator.GetGoGenerator("")
	assert.Equal(t, "go", gen.Language())
	assert.Equal(t, ".go", gen.FileExtension())
}

func TestGenerateEmitsStruct(t *testing.T) {
	source := generateSource(t, "generated")

	assert.Contains(t, source, "package generated")
	assert.Contains(t, source,
		`const TaskTrackerDatabaseID = "cd9c83fe-848b-46cb-a1f4-7c1a51b4f831"`)
	assert.Contains(t, source, "type TaskTracker struct {")

	// One field per schema property, tagged with the original Notion
	// property name and type.
	assert.Contains(t, source, "`notion:\"Name,title\"`")
	assert.Contains(t, source, "`notion:\"Status,status\"`")
	assert.Contains(t, source, "`notion:\"Tags,multi_select\"`")
	assert.Contains(t, source, "`notion:\"Priority,select\"`")
	assert.Contains(t, source, "`notion:\"Estimate,number\"`")
	assert.Contains(t, source, "`notion:\"Due Date,date\"`")
	assert.Contains(t, source, "`notion:\"Done,checkbox\"`")
	assert.Contains(t, source, "`notion:\"Spec URL,url\"`")

	assert.Contains(t, source, `import "time"`)
	assert.Contains(t, source, "DueDate")
	assert.Contains(t, source, "time.Time")
}

func TestGenerateEmitsEnums(t *testing.T) {
	source := generateSource(t, "generated")

	assert.Contains(t, source, "type TaskTrackerStatus string")
	assert.Contains(t, source,
		`TaskTrackerStatusNotStarted TaskTrackerStatus = "Not started"`)
	assert.Contains(t, source,
		`TaskTrackerStatusInProgress TaskTrackerStatus = "In progress"`)
	assert.Contains(t, source, "TaskTrackerStatusDone")
	assert.Contains(t, source, `= "Done"`)

	assert.Contains(t, source, "type TaskTrackerPriority string")
	assert.Contains(t, source,
		`TaskTrackerPriorityP1Plus TaskTrackerPriority = "P1+"`)

	assert.Contains(t, source, "type TaskTrackerTags string")
	assert.Contains(t, source, "[]TaskTrackerTags")
}

func TestGeneratedSourceParses(t *testing.T) {
	source := generateSource(t, "generated")

	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "task_tracker.go", source, 0)
	assert.NoError(t, err)
}

func TestGenerateCustomPackageName(t *testing.T) {
	source := generateSource(t, "notiongen")
	assert.True(t, strings.HasPrefix(source,
		"// Code generated by sbnotion"))
	assert.Contains(t, source, "package notiongen")
}

func TestGenerateEmptyDescriptor(t *testing.T) {
	gen := generator.GetGoGenerator("generated")

	_, err := gen.Generate(nil)
	assert.Error(t, err)

	_, err = gen.Generate(&schema.Descriptor{Title: "Empty"})
	assert.Error(t, err)
}

func TestGenerateFieldNameCollision(t *testing.T) {
	descriptor := &schema.Descriptor{
		DatabaseID: "668d797c-76fa-4934-9b05-ad288df2d136",
		Title:      "Notes",
		Hash:       "abc",
		Properties: []schema.Property{
			{Name: "Name", Type: notion.PropertyTypeTitle},
			{Name: "due date", Type: notion.PropertyTypeDate},
			{Name: "Due Date", Type: notion.PropertyTypeDate},
		},
	}

	gen := generator.GetGoGenerator("generated")
	source, err := gen.Generate(descriptor)
	require.NoError(t, err)

	assert.Contains(t, string(source), "DueDate ")
	assert.Contains(t, string(source), "DueDate2 ")
}
