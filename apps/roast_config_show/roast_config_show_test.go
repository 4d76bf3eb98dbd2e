package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/util/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showFixture = `GITHUB_TOKEN=ghp_abc123
ROAST_DB_HOST=localhost
ROAST_DB_NAME=roast
ROAST_DB_USR=roast
ROAST_DB_PWD=hunter2
`

func scrubEnv(t *testing.T) {
	t.Helper()
	for _, key := range constants.EnvKeys {
		t.Setenv(key, "")
	}
	t.Setenv(constants.EnvEnvFile, "")
}

func show(t *testing.T, content string, opts cli.Options) (int, string) {
	t.Helper()
	scrubEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
	opts.EnvFile = path

	out := &bytes.Buffer{}
	code := run(opts, out)
	return code, out.String()
}

func TestShowMasksSecrets(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{Format: constants.FormatEnv})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "GITHUB_TOKEN=****\n")
	assert.Contains(t, out, "ROAST_DB_PWD=****\n")
	assert.Contains(t, out, "ROAST_DB_HOST=localhost\n")
	assert.NotContains(t, out, "hunter2")
}

func TestShowSecrets(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{
		Format:      constants.FormatEnv,
		ShowSecrets: true,
	})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "GITHUB_TOKEN=ghp_abc123\n")
	assert.Contains(t, out, "ROAST_DB_PWD=hunter2\n")
}

func TestShowOrigin(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{
		Format: constants.FormatEnv,
		Origin: true,
	})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "ROAST_DB_HOST=localhost # file\n")
	assert.Contains(t, out, "RUST_LOG=info # default\n")
}

func TestShowJSON(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{Format: constants.FormatJSON})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, `"ROAST_DB_HOST": "localhost"`)
}

func TestShowSingleVar(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{Var: constants.EnvDBHost})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Equal(t, "localhost\n", out)

	code, out = show(t, showFixture, cli.Options{Var: constants.EnvDBPassword})
	assert.Equal(t, constants.ExitOK, code)
	assert.Equal(t, "****\n", out)

	code, out = show(t, showFixture, cli.Options{Var: "NO_SUCH_VAR"})
	assert.Equal(t, constants.ExitProblems, code)
	assert.Contains(t, out, "unknown variable")
}

func TestShowPqDSN(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{PqDSN: true})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Equal(t,
		"dbname=roast host=localhost password=hunter2 port=5432 sslmode=prefer user=roast\n",
		out)
}

func TestShowPqDSNUnconfigured(t *testing.T) {
	code, out := show(t, "RUST_LOG=info\n", cli.Options{PqDSN: true})
	assert.Equal(t, constants.ExitProblems, code)
	assert.Contains(t, out, "database is not configured")
}

func TestShowUnknownFormat(t *testing.T) {
	code, out := show(t, showFixture, cli.Options{Format: "toml"})
	assert.Equal(t, constants.ExitProblems, code)
	assert.Contains(t, out, "unknown format")
}
