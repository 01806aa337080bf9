package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKeys(t *testing.T) {
	ClearCache()

	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"persona.json", "mentor-persona", "AI Career Agent"},
		{"persona.json", "initial-greeting", "AI-ментор"},
		{"phases.json", "scan-system", "PHASE 1: THE SCANNER"},
		{"phases.json", "roadmap-system", "Career Roadmap"},
		{"phases.json", "search-prompt", "{{.Query}}"},
		{"intake.json", "intake-system", "intake interview"},
		{"intake.json", "summarize-profile", "{{.ChatHistory}}"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	ClearCache()

	_, err := Get("phases.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-key")
}

func TestGet_MissingFile(t *testing.T) {
	ClearCache()

	_, err := Get("missing.json", "anything")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	template := "Find jobs for: {{.Query}} in {{.Location}}"
	result := Format(template, map[string]string{
		"Query":    "Junior Go Developer",
		"Location": "Kyiv",
	})

	assert.Equal(t, "Find jobs for: Junior Go Developer in Kyiv", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("phases.json", "definitely-missing")
	})
}
