package command

import (
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandFlagDefaults(t *testing.T) {
	c := NewRunCommand(cli.NewMockUi())
	require.NoError(t, c.flags.Parse([]string{}))

	assert.Equal(t, DefaultCephConfig, c.cephConfig)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.False(t, c.debug)
	assert.False(t, c.deviceHealth)
	assert.False(t, c.logConfig)
	assert.Empty(t, c.configFilters)
}

func TestRunCommandFlagParsing(t *testing.T) {
	c := NewRunCommand(cli.NewMockUi())
	err := c.flags.Parse([]string{
		"-ceph-config", "/tmp/ceph.conf",
		"-timeout", "30s",
		"-debug",
		"-device-health-metrics",
		"-config-filter", "secret",
		"-config-filter", "token",
		"-log-gathered-config",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ceph.conf", c.cephConfig)
	assert.Equal(t, "30s", c.timeout.String())
	assert.True(t, c.debug)
	assert.True(t, c.deviceHealth)
	assert.True(t, c.logConfig)
	assert.Equal(t, []string{"secret", "token"}, c.configFilters)
}

func TestRunCommandUnknownFlag(t *testing.T) {
	ui := cli.NewMockUi()
	c := NewRunCommand(ui)

	rc := c.Run([]string{"-no-such-flag"})
	assert.Equal(t, FlagParseError, rc)
	assert.Contains(t, ui.ErrorWriter.String(), "Usage: ceph-fact run")
}

func TestRunCommandInvalidConfigFilter(t *testing.T) {
	c := NewRunCommand(cli.NewMockUi())

	rc := c.Run([]string{"-config-filter", "(["})
	assert.Equal(t, FlagParseError, rc)
}

// An unreachable cluster must produce a non-zero exit and no report on
// stdout. The bogus config path makes librados fail before any query runs.
func TestRunCommandConnectFailure(t *testing.T) {
	c := NewRunCommand(cli.NewMockUi())

	rc := c.Run([]string{"-ceph-config", "/nonexistent/ceph.conf", "-timeout", "1s"})
	assert.Equal(t, RunError, rc)
}

func TestAppendFlag(t *testing.T) {
	var values []string
	f := AppendFlag{Values: &values}

	require.NoError(t, f.Set("one"))
	require.NoError(t, f.Set("two"))
	assert.Equal(t, []string{"one", "two"}, values)
	assert.Equal(t, "one, two", f.String())

	assert.Equal(t, "", AppendFlag{}.String())
}

func TestRunCommandHelp(t *testing.T) {
	c := NewRunCommand(cli.NewMockUi())
	help := c.Help()

	for _, flagName := range []string{
		"-ceph-config",
		"-timeout",
		"-debug",
		"-device-health-metrics",
		"-config-filter",
		"-log-gathered-config",
	} {
		assert.Contains(t, help, flagName)
	}
}

func TestVersionCommand(t *testing.T) {
	ui := cli.NewMockUi()
	c := NewVersionCommand(ui)

	rc := c.Run(nil)
	assert.Equal(t, Success, rc)
	assert.Contains(t, ui.OutputWriter.String(), "ceph-fact v")
}
