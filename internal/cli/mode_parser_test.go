package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModeFlagForm(t *testing.T) {
	mode, rest, err := ParseMode([]string{"--mode=rider-agent", "--config=c.yaml"})
	require.NoError(t, err)
	assert.Equal(t, ModeRider, mode)
	assert.Equal(t, []string{"--config=c.yaml"}, rest)
}

func TestParseModeSubcommandShorthand(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"rider", ModeRider},
		{"r", ModeRider},
		{"driver", ModeDriver},
		{"d", ModeDriver},
		{"admin-agent", ModeAdmin},
		{"a", ModeAdmin},
	}
	for _, tc := range cases {
		mode, _, err := ParseMode([]string{tc.in})
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, mode, "input %q", tc.in)
	}
}

func TestParseModeMissing(t *testing.T) {
	_, _, err := ParseMode([]string{"--config=c.yaml"})
	assert.Error(t, err)
}

func TestParseModeKeepsUnrelatedArgs(t *testing.T) {
	mode, rest, err := ParseMode([]string{"--email=x@y.z", "driver-agent", "--online"})
	require.NoError(t, err)
	assert.Equal(t, ModeDriver, mode)
	assert.Equal(t, []string{"--email=x@y.z", "--online"}, rest)
}
