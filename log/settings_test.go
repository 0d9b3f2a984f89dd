package log

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khetao.com/optkit/option"
)

func TestOptionsListOptions(t *testing.T) {
	var names []string
	for _, o := range DefaultOptions().ListOptions() {
		names = append(names, o.Name())
	}
	assert.Equal(t, []string{"json", "output_level", "stacktrace_level", "caller", "target", "error_target", "rotate"}, names)
}

func TestOptionsRoundTrip(t *testing.T) {
	o := DefaultOptions()
	require.NoError(t, o.SetOptions([]string{
		"-json",
		"-output_level", "default:debug,testscope:warn",
		"-target", "stdout,/tmp/a.log",
		"-rotate", "log.Rotation -path /tmp/r.log -max_backups 2",
	}))

	assert.True(t, o.JSONEncoding)
	assert.Equal(t, []string{"stdout", "/tmp/a.log"}, o.OutputPaths)
	require.NotNil(t, o.Rotation)
	assert.Equal(t, "/tmp/r.log", o.Rotation.Path)
	assert.Equal(t, 2, o.Rotation.MaxBackups)
	assert.Equal(t, defaultRotationMaxSize, o.Rotation.MaxSize)

	tokens, err := o.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-json",
		"-output_level", "default:debug,testscope:warn",
		"-stacktrace_level", "default:none",
		"-caller", "",
		"-target", "stdout,/tmp/a.log",
		"-error_target", "stderr",
		"-rotate", "log.Rotation -path /tmp/r.log -max_size 100 -max_age 30 -max_backups 2",
	}, tokens)

	again := DefaultOptions()
	require.NoError(t, again.SetOptions(tokens))
	assert.Equal(t, o, again)
}

func TestRotationRequiresPath(t *testing.T) {
	err := DefaultRotation().SetOptions([]string{"-max_size", "3"})
	var missing *option.MissingValueError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "path", missing.Option)
	assert.True(t, missing.Required)
}

func TestDefaultRegistryHasLogTypes(t *testing.T) {
	h, err := option.DefaultRegistry.ForName(RotationTypeName, []string{"-path", "/tmp/x.log"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", h.(*Rotation).Path)

	name, ok := option.DefaultRegistry.NameOf(DefaultOptions())
	assert.True(t, ok)
	assert.Equal(t, OptionsTypeName, name)
}

func TestLogrAdapter(t *testing.T) {
	var l logr.Logger = NewLogrAdapter(testScope)
	assert.True(t, l.Enabled())
	assert.False(t, l.V(1).Enabled())

	testScope.SetOutputLevel(DebugLevel)
	defer testScope.SetOutputLevel(InfoLevel)
	assert.True(t, l.V(1).Enabled())
}
