package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "", canonical("  "))
	assert.Equal(t, "v1.2.3", canonical("1.2.3"))
	assert.Equal(t, "v1.2.3", canonical(" v1.2.3 "))
	assert.Equal(t, "dev", canonical("dev"))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		in      string
		release bool
		major   string
	}{
		{"dev", false, ""},
		{"", false, ""},
		{"1.4.0", true, "v1"},
		{"v2.0.1", true, "v2"},
		{"v2.0.1-rc.1", false, "v2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			info := describe(tt.in, "abc")
			assert.Equal(t, tt.in, info.Version)
			assert.Equal(t, tt.release, info.Release)
			assert.Equal(t, tt.major, info.Major)
			assert.Equal(t, "abc", info.Commit)
			assert.NotEmpty(t, info.GoVersion)
		})
	}
}
