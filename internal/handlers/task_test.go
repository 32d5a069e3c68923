package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/supertask-api/internal/dto"
	apierrors "github.com/yukikurage/supertask-api/internal/errors"
	"github.com/yukikurage/supertask-api/internal/models"
)

func decodeUpdate(t *testing.T, body string) (dto.UpdateTaskRequest, map[string]json.RawMessage) {
	t.Helper()
	var req dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return req, raw
}

func TestBuildUpdateTaskInput_AbsentFieldsUnchanged(t *testing.T) {
	req, raw := decodeUpdate(t, `{"priority":"high"}`)

	input, msgID := buildUpdateTaskInput(req, raw, false)

	assert.Empty(t, msgID)
	require.NotNil(t, input.Priority)
	assert.Equal(t, models.TaskPriorityHigh, *input.Priority)
	assert.Nil(t, input.Title)
	assert.Nil(t, input.Description)
	assert.Nil(t, input.Status)
	assert.False(t, input.ClearDueDate)
	assert.False(t, input.ClearCategory)
}

func TestBuildUpdateTaskInput_TitleRules(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		requireTitle bool
		wantMsg      string
	}{
		{"put without title", `{"status":"pending"}`, true, apierrors.MsgTitleRequired},
		{"put with title", `{"title":"x"}`, true, ""},
		{"patch without title", `{"status":"pending"}`, false, ""},
		{"patch with blank title", `{"title":"  "}`, false, apierrors.MsgTitleRequired},
		{"patch with null title", `{"title":null}`, false, apierrors.MsgTitleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, raw := decodeUpdate(t, tt.body)
			_, msgID := buildUpdateTaskInput(req, raw, tt.requireTitle)
			assert.Equal(t, tt.wantMsg, msgID)
		})
	}
}

func TestBuildUpdateTaskInput_NullClears(t *testing.T) {
	req, raw := decodeUpdate(t, `{"due_date":null,"description":null}`)

	input, msgID := buildUpdateTaskInput(req, raw, false)

	assert.Empty(t, msgID)
	assert.True(t, input.ClearDueDate)
	require.NotNil(t, input.Description)
	assert.Empty(t, *input.Description)
}

func TestBuildUpdateTaskInput_NullEnumsRejected(t *testing.T) {
	req, raw := decodeUpdate(t, `{"priority":null}`)
	_, msgID := buildUpdateTaskInput(req, raw, false)
	assert.Equal(t, apierrors.MsgInvalidPriority, msgID)

	req, raw = decodeUpdate(t, `{"status":null}`)
	_, msgID = buildUpdateTaskInput(req, raw, false)
	assert.Equal(t, apierrors.MsgInvalidStatus, msgID)
}

func TestBuildUpdateTaskInput_CategoryPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantID    bool
		wantName  bool
		wantClear bool
	}{
		{"id wins over name", `{"category":3,"category_name":"Lazer"}`, true, false, false},
		{"null id clears", `{"category":null,"category_name":"Lazer"}`, false, false, true},
		{"name resolves", `{"category_name":"Lazer"}`, false, true, false},
		{"empty name clears", `{"category_name":""}`, false, false, true},
		{"null name clears", `{"category_name":null}`, false, false, true},
		{"absent keeps", `{}`, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, raw := decodeUpdate(t, tt.body)
			input, msgID := buildUpdateTaskInput(req, raw, false)

			assert.Empty(t, msgID)
			assert.Equal(t, tt.wantID, input.Category.ID != nil)
			assert.Equal(t, tt.wantName, input.Category.Name != nil)
			assert.Equal(t, tt.wantClear, input.ClearCategory)
		})
	}
}

func TestBuildUpdateTaskInput_InvalidDueDate(t *testing.T) {
	req, raw := decodeUpdate(t, `{"due_date":"2025-02-30"}`)
	_, msgID := buildUpdateTaskInput(req, raw, false)
	assert.Equal(t, apierrors.MsgInvalidDueDate, msgID)
}
