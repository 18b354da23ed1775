package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormAnswers_AcceptsNumbersAndStrings(t *testing.T) {
	var req ExamResultRequest
	err := json.Unmarshal([]byte(`{
		"exam_type": "TYT",
		"exam_name": "Deneme 1",
		"exam_date": "2026-03-14",
		"answers": {"tyt_turkce_dogru": 32, "tyt_turkce_yanlis": "4", "tyt_fen_dogru": null, "total_score": 412.5}
	}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "32", req.Answers["tyt_turkce_dogru"])
	assert.Equal(t, "4", req.Answers["tyt_turkce_yanlis"])
	assert.Equal(t, "", req.Answers["tyt_fen_dogru"])
	assert.Equal(t, "412.5", req.Answers["total_score"])
}

func TestFormAnswers_RejectsNestedValues(t *testing.T) {
	var answers FormAnswers
	err := json.Unmarshal([]byte(`{"tyt_turkce_dogru": [1, 2]}`), &answers)
	assert.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleTeacher.Valid())
	assert.False(t, Role("principal").Valid())

	teacher := RoleTeacher.Permissions()
	assert.Contains(t, teacher, string(PermissionAnalysisRead))
	assert.NotContains(t, teacher, string(PermissionSettingsWrite))
	assert.Len(t, RoleAdmin.Permissions(), len(AllPermissions))
	assert.Empty(t, Role("principal").Permissions())
}
