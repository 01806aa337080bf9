package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, cat := range AllCategories() {
		assert.True(t, cat.Valid(), string(cat))
	}
	assert.False(t, Category("bogus").Valid())
	assert.False(t, Category("").Valid())
}

func TestIntakeForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    IntakeForm
		wantErr bool
	}{
		{
			name: "valid minimal",
			form: IntakeForm{Name: "Andriy", Email: "andriy@example.com"},
		},
		{
			name: "valid with links",
			form: IntakeForm{
				Name:        "Andriy",
				Email:       "andriy@example.com",
				GithubURL:   "https://github.com/andriy",
				LinkedinURL: "https://linkedin.com/in/andriy",
			},
		},
		{
			name:    "missing name",
			form:    IntakeForm{Email: "andriy@example.com"},
			wantErr: true,
		},
		{
			name:    "bad email",
			form:    IntakeForm{Name: "Andriy", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "bad github url",
			form:    IntakeForm{Name: "Andriy", Email: "a@b.co", GithubURL: "github dot com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTranscript_Clone(t *testing.T) {
	original := Transcript{UserTurn("hi"), AssistantTurn("hello")}

	clone := original.Clone()
	clone[0].Text = "changed"

	assert.Equal(t, "hi", original[0].Text)
	assert.Nil(t, Transcript(nil).Clone())
}

func TestPayload_JSONShape(t *testing.T) {
	text := TextPayload("analysis")
	data, err := json.Marshal(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"analysis"}`, string(data))
	assert.False(t, text.IsSearch())

	search := SearchPayload(&SearchResult{Summary: "ok"})
	data, err = json.Marshal(search)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"summary":"ok"`)
	assert.True(t, search.IsSearch())
}
