package bind_test

import (
	"testing"
	"time"

	"github.com/snadboy/sbnotion/src/bind"
	"github.com/snadboy/sbnotion/src/notion"
	"github.com/snadboy/sbnotion/src/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TEST_DATA_PATH = "./../../testdata/"
	PAGE_JSON      = TEST_DATA_PATH + "page.json"
)

// taskTrackerStatus mirrors the enum types the code generator emits.
type taskTrackerStatus string

type taskTracker struct {
	Name     string            `notion:"Name,title"`
	Status   taskTrackerStatus `notion:"Status,status"`
	Tags     []string          `notion:"Tags,multi_select"`
	Priority string            `notion:"Priority,select"`
	Estimate float64           `notion:"Estimate,number"`
	DueDate  time.Time         `notion:"Due Date,date"`
	Done     bool              `notion:"Done,checkbox"`
	SpecURL  string            `notion:"Spec URL,url"`
}

func loadPage(t *testing.T) *notion.Page {
	t.Helper()
	jsonBytes, err := utils.ReadJsonFile(PAGE_JSON)
	require.NoError(t, err)

	page, err := utils.ParsePageJsonString(jsonBytes)
	require.NoError(t, err)
	return page
}

func TestUnmarshalPage(t *testing.T) {
	task := taskTracker{}
	err := bind.UnmarshalPage(loadPage(t), &task)
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Name)
	assert.Equal(t, taskTrackerStatus("In progress"), task.Status)
	assert.Equal(t, []string{"work"}, task.Tags)
	assert.Equal(t, "High", task.Priority)
	assert.Equal(t, 3.5, task.Estimate)
	assert.Equal(t, time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
		task.DueDate)
	assert.True(t, task.Done)
	assert.Equal(t, "https://example.com/spec", task.SpecURL)
}

func TestUnmarshalPageSkipsUnknownProperties(t *testing.T) {
	type sparse struct {
		Name    string `notion:"Name,title"`
		Missing string `notion:"No Such Property,rich_text"`
		ignored string
	}

	out := sparse{}
	err := bind.UnmarshalPage(loadPage(t), &out)
	require.NoError(t, err)

	assert.Equal(t, "Write report", out.Name)
	assert.Empty(t, out.Missing)
	assert.Empty(t, out.ignored)
}

func TestUnmarshalPageInvalidTarget(t *testing.T) {
	page := loadPage(t)

	assert.Error(t, bind.UnmarshalPage(nil, &taskTracker{}))
	assert.Error(t, bind.UnmarshalPage(page, nil))
	assert.Error(t, bind.UnmarshalPage(page, taskTracker{}))

	var nilPtr *taskTracker
	assert.Error(t, bind.UnmarshalPage(page, nilPtr))
}

func TestUnmarshalPageTypeMismatch(t *testing.T) {
	type wrong struct {
		Estimate string `notion:"Estimate,number"`
	}

	err := bind.UnmarshalPage(loadPage(t), &wrong{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `property "Estimate"`)
}

func TestMarshalProperties(t *testing.T) {
	task := &taskTracker{
		Name:     "File expenses",
		Status:   "Not started",
		Tags:     []string{"home", "work"},
		Estimate: 1.5,
		Done:     true,
		DueDate:  time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	properties, err := bind.MarshalProperties(task)
	require.NoError(t, err)

	require.Contains(t, properties, "Name")
	assert.Equal(t, "File expenses", properties["Name"].PlainText())

	require.Contains(t, properties, "Status")
	assert.Equal(t, "Not started", properties["Status"].Status.Name)

	require.Contains(t, properties, "Tags")
	require.Len(t, properties["Tags"].MultiSelect, 2)
	assert.Equal(t, "home", properties["Tags"].MultiSelect[0].Name)

	require.Contains(t, properties, "Estimate")
	assert.Equal(t, 1.5, *properties["Estimate"].Number)

	require.Contains(t, properties, "Done")
	assert.True(t, *properties["Done"].Checkbox)

	require.Contains(t, properties, "Due Date")
	assert.Equal(t, "2023-04-01T00:00:00Z",
		*properties["Due Date"].Date.Start)
}

func TestMarshalPropertiesSkipsZeroFields(t *testing.T) {
	properties, err := bind.MarshalProperties(&taskTracker{Name: "Only name"})
	require.NoError(t, err)

	assert.Len(t, properties, 1)
	assert.Contains(t, properties, "Name")
}

func TestMarshalPropertiesSkipsReadOnlyTypes(t *testing.T) {
	type withReadOnly struct {
		Name    string `notion:"Name,title"`
		Created string `notion:"Created,created_time"`
		Serial  string `notion:"Serial,unique_id"`
	}

	properties, err := bind.MarshalProperties(&withReadOnly{
		Name:    "Task",
		Created: "2023-03-01T19:05:00Z",
		Serial:  "TASK-42",
	})
	require.NoError(t, err)

	assert.Len(t, properties, 1)
	assert.Contains(t, properties, "Name")
}

func TestMarshalPropertiesInvalidInput(t *testing.T) {
	_, err := bind.MarshalProperties(nil)
	assert.Error(t, err)

	_, err = bind.MarshalProperties("not a struct")
	assert.Error(t, err)

	var nilPtr *taskTracker
	_, err = bind.MarshalProperties(nilPtr)
	assert.Error(t, err)
}
