package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/deskulpt-apps/deskulpt/pkg/sdk"
)

func TestGetSystemInfo(t *testing.T) {
	out, err := sdk.CallPlugin(sysPlugin{}, "get_system_info", "w1", nil, "")
	require.NoError(t, err)

	res := gjson.Parse(out)
	assert.Greater(t, res.Get("totalMemory").Uint(), uint64(0))
	assert.NotEmpty(t, res.Get("hostName").String())
	assert.NotEmpty(t, res.Get("systemName").String())
	assert.Greater(t, res.Get("cpuCount").Int(), int64(0))

	// Per-device sections are present even when empty.
	assert.True(t, res.Get("disks").Exists())
	assert.True(t, res.Get("networks").Exists())
}

func TestGetSystemInfoIgnoresPayload(t *testing.T) {
	// The command takes no input; any payload shape including null works.
	for _, payload := range []string{"", "null", "{}"} {
		_, err := sdk.CallPlugin(sysPlugin{}, "get_system_info", "w1", nil, payload)
		assert.NoError(t, err, "payload %q", payload)
	}
}

func TestPluginIdentity(t *testing.T) {
	p := sysPlugin{}
	assert.Equal(t, "sys", p.Name())
	require.Len(t, p.Commands(), 1)
	assert.Equal(t, "get_system_info", p.Commands()[0].Name())
}
