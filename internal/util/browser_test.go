package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "http://localhost:8501"

func TestBrowserCommands(t *testing.T) {
	win := BrowserCommands("windows", testURL)
	require.Len(t, win, 2)
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler", testURL}, win[0])
	assert.Equal(t, []string{"explorer", testURL}, win[1])

	assert.Equal(t, [][]string{{"open", testURL}}, BrowserCommands("darwin", testURL))
	assert.Equal(t, []string{"xdg-open", testURL}, BrowserCommands("linux", testURL)[0])
	assert.Equal(t, [][]string{{"xdg-open", testURL}}, BrowserCommands("freebsd", testURL))
}

func TestOpenWithFallsBack(t *testing.T) {
	var tried []string
	start := func(name string, args ...string) error {
		tried = append(tried, name)
		if name == "firefox" {
			return nil
		}
		return errors.New("not found")
	}

	require.NoError(t, openWith(start, "linux", testURL))
	assert.Equal(t, []string{"xdg-open", "google-chrome", "firefox"}, tried)
}

func TestOpenWithAllFail(t *testing.T) {
	start := func(string, ...string) error { return errors.New("not found") }
	assert.Error(t, openWith(start, "darwin", testURL))
}
