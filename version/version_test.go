package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := CobraCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildInfo(t *testing.T) {
	assert.Equal(t, runtime.Version(), Info.GolangVersion)
	assert.Equal(t, "unknown-unknown-unknown", Info.String())
}

func TestCommandShort(t *testing.T) {
	out, err := run(t, "-s")
	require.NoError(t, err)
	assert.Equal(t, Info.Version+"\n", out)
}

func TestCommandLong(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Equal(t, Info.LongForm()+"\n", out)
}

func TestCommandStructured(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "-o", format)
			require.NoError(t, err)

			var v Version
			if format == "json" {
				require.NoError(t, json.Unmarshal([]byte(out), &v))
			} else {
				require.NoError(t, yaml.Unmarshal([]byte(out), &v))
			}
			require.NotNil(t, v.ClientVersion)
			assert.Equal(t, Info, *v.ClientVersion)
		})
	}
}

func TestCommandBadOutput(t *testing.T) {
	_, err := run(t, "-o", "xml")
	assert.EqualError(t, err, `--output must be 'yaml' or 'json'`)
}
