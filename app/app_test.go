package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"khetao.com/optkit/log"
	"khetao.com/optkit/option"
	"khetao.com/optkit/structured"
)

type counter struct {
	n int
}

var counterType = &option.Type{
	Name: "test.Rotation",
	Settings: []option.Setting{
		option.Int(option.Meta{Name: "n", Description: "Count.", Synopsis: "-n <num>"},
			func(c *counter) int { return c.n },
			func(c *counter, v int) { c.n = v }),
	},
}

func (c *counter) Hierarchy() []*option.Type { return []*option.Type{counterType} }

func (c *counter) ListOptions() []option.Option { return option.ListOptions(counterType) }

func (c *counter) Options() ([]string, error) { return option.GetOptions(c, counterType) }

func (c *counter) SetOptions(tokens []string) error {
	return option.SetOptions(tokens, c, counterType)
}

func testApp(t *testing.T) (*App, string) {
	t.Helper()
	r := option.NewRegistry()
	r.MustRegister(log.OptionsTypeName, func() option.Handler { return log.DefaultOptions() })
	r.MustRegister(log.RotationTypeName, func() option.Handler { return log.DefaultRotation() })
	r.MustRegister("test.Rotation", func() option.Handler { return &counter{n: 1} })

	logFile := filepath.Join(t.TempDir(), "app.log")
	lo := log.DefaultOptions()
	lo.OutputPaths = []string{logFile}
	t.Cleanup(func() {
		require.NoError(t, log.Configure(log.DefaultOptions()))
	})
	return New("optctl", WithRegistry(r), WithLogOptions(lo), WithDescription("test")), logFile
}

func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	cmd := a.Command()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	a, _ := testApp(t)

	out, err := run(t, a, "list")
	require.NoError(t, err)
	assert.Equal(t, "log.Options\nlog.Rotation\ntest.Rotation\n", out)

	out, err = run(t, a, "list", "Rotation")
	require.NoError(t, err)
	assert.Equal(t, "log.Rotation\ntest.Rotation\n", out)
}

func TestDescribe(t *testing.T) {
	a, _ := testApp(t)

	out, err := run(t, a, "describe", "test.Rotation")
	require.NoError(t, err)
	assert.Equal(t, "test.Rotation -n 1\n\n-n <num>\n\tCount.\n\n", out)

	out, err = run(t, a, "describe", "Options")
	require.NoError(t, err)
	assert.Contains(t, out, "log.Options -output_level default:info")
	assert.Contains(t, out, "-rotate \"log.Rotation -path <file> ...\"\n")
}

func TestDescribeStructured(t *testing.T) {
	a, _ := testApp(t)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, a, "describe", "log.Rotation", "-o", format)
			require.NoError(t, err)

			var d Description
			if format == "json" {
				require.NoError(t, json.Unmarshal([]byte(out), &d))
			} else {
				require.NoError(t, yaml.Unmarshal([]byte(out), &d))
			}
			assert.Equal(t, "log.Rotation", d.Scheme)
			var names []string
			for _, r := range d.Options {
				names = append(names, r.Name)
			}
			assert.Equal(t, []string{"path", "max_size", "max_age", "max_backups"}, names)
			assert.Equal(t, "File to write.", d.Options[0].Description)
		})
	}

	_, err := run(t, a, "describe", "log.Rotation", "-o", "xml")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	a, _ := testApp(t)

	out, err := run(t, a, "parse", "test.Rotation", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "-n 3\n", out)

	out, err = run(t, a, "parse", "Options", "-json", "-output_level", "default:debug")
	require.NoError(t, err)
	assert.Contains(t, out, "-json -output_level default:debug")
}

func TestParseNested(t *testing.T) {
	a, _ := testApp(t)

	out, err := run(t, a, "parse", "log.Options", "-rotate", "log.Rotation -path /tmp/x.log -max_size 5")
	require.NoError(t, err)
	assert.Contains(t, out, `-rotate "log.Rotation -path /tmp/x.log -max_size 5 -max_age 30 -max_backups 1000"`)
}

func TestParseErrors(t *testing.T) {
	a, logFile := testApp(t)

	_, err := run(t, a, "parse", "Missing")
	var unknown *option.UnknownTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Missing", unknown.Name)

	_, err = run(t, a, "parse", "Rotation")
	var ambiguous *AmbiguousSchemeError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, []string{"log.Rotation", "test.Rotation"}, ambiguous.Candidates)

	_, err = run(t, a, "parse", "test.Rotation", "-n", "many")
	var conv *option.ConversionError
	require.True(t, errors.As(err, &conv))
	assert.Equal(t, "many", conv.Token)

	require.NoError(t, log.Sync())
	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "optctl parse failed")
	assert.Contains(t, string(b), "action=Use the fully-qualified scheme name.")
}

func TestSet(t *testing.T) {
	a, _ := testApp(t)

	out, err := run(t, a, "set", "test.Rotation", "--n=4")
	require.NoError(t, err)
	assert.Equal(t, "-n 4\n", out)

	out, err = run(t, a, "set", "log.Options", "--json", "--target=stderr")
	require.NoError(t, err)
	assert.Contains(t, out, "-json ")
	assert.Contains(t, out, "-target stderr")

	out, err = run(t, a, "set", "test.Rotation", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--n string")

	_, err = run(t, a, "set", "test.Rotation", "--bogus")
	var serr *structured.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, errBadOptions.Action, serr.Action)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want *structured.Error
	}{
		{&option.UnknownTypeError{Name: "x"}, errUnknownScheme},
		{&AmbiguousSchemeError{Suffix: "x"}, errAmbiguousScheme},
		{&option.MissingValueError{Option: "depth"}, errBadOptions},
		{errors.New("boom"), errInternal},
	}
	for _, c := range cases {
		got := classify(c.err)
		assert.Equal(t, c.want.Action, got.Action, c.err.Error())
		assert.ErrorIs(t, got, c.err)
	}
}
