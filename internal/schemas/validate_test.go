package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionDetail_AcceptsWellFormedPayload(t *testing.T) {
	payload := []byte(`{
		"session_id": "abc123",
		"job_description": "Need a Go engineer",
		"created_at": "2026-08-30T10:00:00Z",
		"ranked_candidates": [
			{
				"filename": "alice.pdf",
				"final_score": 88.5,
				"matched_skills": ["Go"],
				"missing_skills": [],
				"feedback": {"verdict": "Strong match", "summary": "ok"}
			}
		]
	}`)

	assert.NoError(t, ValidateSessionDetail(payload))
}

func TestValidateSessionDetail_AcceptsEmptyCandidateList(t *testing.T) {
	payload := []byte(`{
		"session_id": "abc123",
		"job_description": "",
		"created_at": "2026-08-30T10:00:00Z",
		"ranked_candidates": []
	}`)

	assert.NoError(t, ValidateSessionDetail(payload))
}

func TestValidateSessionDetail_RejectsMissingSessionID(t *testing.T) {
	payload := []byte(`{
		"job_description": "jd",
		"created_at": "2026-08-30T10:00:00Z",
		"ranked_candidates": []
	}`)

	err := ValidateSessionDetail(payload)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateSessionDetail_RejectsOutOfRangeScore(t *testing.T) {
	payload := []byte(`{
		"session_id": "abc123",
		"job_description": "jd",
		"created_at": "2026-08-30T10:00:00Z",
		"ranked_candidates": [
			{
				"filename": "alice.pdf",
				"final_score": 150.0,
				"matched_skills": [],
				"missing_skills": [],
				"feedback": {"verdict": "v", "summary": "s"}
			}
		]
	}`)

	assert.Error(t, ValidateSessionDetail(payload))
}

func TestValidateSessionDetail_RejectsNonJSON(t *testing.T) {
	assert.Error(t, ValidateSessionDetail([]byte("not json")))
}
