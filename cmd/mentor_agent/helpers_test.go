package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cv.html", "text/html"},
		{"cv.HTM", "text/html"},
		{"cv.json", "application/json"},
		{"cv.md", "text/markdown"},
		{"cv.txt", "text/plain"},
		{"cv", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, mimeForPath(tt.path))
		})
	}
}

func TestSearchTitle(t *testing.T) {
	assert.Equal(t, "Search: QA Kyiv", searchTitle("QA Kyiv"))
	assert.Equal(t, "Search: ", searchTitle(""))

	long := "Junior Golang developer remote Europe"
	assert.Equal(t, "Search: Junior Golang develo", searchTitle(long))

	// Truncation counts runes, not bytes.
	cyrillic := "Молодший інженер з тестування"
	assert.Equal(t, "Search: Молодший інженер з т", searchTitle(cyrillic))
}
