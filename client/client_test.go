package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandEncode(t *testing.T) {
	tcs := []struct {
		name   string
		cmd    Command
		expect map[string]any
	}{
		{
			name: "prefix and default format",
			cmd:  Command{Prefix: "status"},
			expect: map[string]any{
				"prefix": "status",
				"format": "json",
			},
		},
		{
			name: "explicit format",
			cmd:  Command{Prefix: "fs status", Format: "json-pretty"},
			expect: map[string]any{
				"prefix": "fs status",
				"format": "json-pretty",
			},
		},
		{
			name: "extra arguments are flattened into the object",
			cmd: Command{
				Prefix: "device get-health-metrics",
				Args:   map[string]any{"devid": "nvme0n1_S3EVNX0K"},
			},
			expect: map[string]any{
				"prefix": "device get-health-metrics",
				"format": "json",
				"devid":  "nvme0n1_S3EVNX0K",
			},
		},
	}
	for _, tc := range tcs {
		b, err := tc.cmd.Encode()
		require.NoError(t, err, tc.name)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(b, &decoded), tc.name)
		assert.Equal(t, tc.expect, decoded, tc.name)
	}
}

func TestCommandEncodeArgsCannotOverridePrefix(t *testing.T) {
	cmd := Command{
		Prefix: "health",
		Args:   map[string]any{"prefix": "osd purge", "detail": "detail"},
	}
	b, err := cmd.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "health", decoded["prefix"])
	assert.Equal(t, "detail", decoded["detail"])
}
