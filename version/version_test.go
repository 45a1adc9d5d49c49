package version

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, version, v.Version)
	assert.Equal(t, prerelease, v.Prerelease)
}

func TestSemanticVersion(t *testing.T) {
	testCases := []struct {
		name string
		v    Version
	}{
		{
			name: "only version",
			v: Version{
				Version: "0.0.0",
			},
		},
		{
			name: "with prerelease",
			v: Version{
				Version:    "0.0.0",
				Prerelease: "test",
			},
		},
		{
			name: "with metadata",
			v: Version{
				Version:  "0.0.0",
				Metadata: "buildinfo",
			},
		},
		{
			name: "all fields",
			v: Version{
				Version:    "0.0.0",
				Prerelease: "test",
				Metadata:   "buildinfo",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sv := tc.v.SemanticVersion()
			assert.Contains(t, sv, tc.v.Version)
			if tc.v.Prerelease != "" {
				assert.Contains(t, sv, fmt.Sprintf("-%s", tc.v.Prerelease))
			}
			if tc.v.Metadata != "" {
				assert.Contains(t, sv, fmt.Sprintf("+%s", tc.v.Metadata))
			}
		})
	}
}

func TestFullVersionNumber(t *testing.T) {
	v := Version{Version: "1.2.3", Revision: "abc123", BuildDate: "2024-01-01"}

	full := v.FullVersionNumber(true)
	assert.True(t, strings.HasPrefix(full, slug))
	assert.Contains(t, full, "(abc123)")
	assert.Contains(t, full, "built 2024-01-01")

	noRev := v.FullVersionNumber(false)
	assert.NotContains(t, noRev, "abc123")
}
