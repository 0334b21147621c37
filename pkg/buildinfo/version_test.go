package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	info := fromSettings(Info{Version: "dev"}, settings)
	assert.Equal(t, "0123456789abcdef", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.Date)
	assert.True(t, info.Dirty)
	assert.Equal(t, "0123456", info.ShortCommit())
	assert.Contains(t, info.String(), "commit: 0123456-dirty")
}

func TestFromSettingsKeepsLdflags(t *testing.T) {
	info := fromSettings(Info{Commit: "release", Date: "today"}, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc"},
		{Key: "vcs.time", Value: "yesterday"},
	})
	assert.Equal(t, "release", info.Commit)
	assert.Equal(t, "today", info.Date)
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	assert.True(t, strings.HasPrefix(tmpl, "{{.Name}} version: "))
	assert.Contains(t, tmpl, "built: ")
}
