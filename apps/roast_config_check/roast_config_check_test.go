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

func scrubEnv(t *testing.T) {
	t.Helper()
	for _, key := range constants.EnvKeys {
		t.Setenv(key, "")
	}
	t.Setenv(constants.EnvEnvFile, "")
}

func checkFile(t *testing.T, content string, opts cli.Options) (int, string) {
	t.Helper()
	scrubEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
	opts.EnvFile = path

	out := &bytes.Buffer{}
	code := run(opts, out)
	return code, out.String()
}

func TestCheckCleanFile(t *testing.T) {
	content := "RAYON_NUM_THREADS=8\nRUST_LOG=warn\nROAST_DB_HOST=localhost\nROAST_DB_NAME=roast\n"
	code, out := checkFile(t, content, cli.Options{})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "ok\n")
	assert.NotContains(t, out, "warning")
}

func TestCheckUnknownVariableWarns(t *testing.T) {
	code, out := checkFile(t, "ROAST_DBHOST=localhost\n", cli.Options{})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "unknown variable")
	assert.Contains(t, out, "ok with warnings")
}

func TestCheckStrictPromotesWarnings(t *testing.T) {
	code, out := checkFile(t, "ROAST_DBHOST=localhost\n", cli.Options{Strict: true})
	assert.Equal(t, constants.ExitProblems, code, out)
	assert.Contains(t, out, "configuration has problems")
}

func TestCheckValidationError(t *testing.T) {
	code, out := checkFile(t, "RAYON_NUM_THREADS=-2\n", cli.Options{})
	assert.Equal(t, constants.ExitProblems, code, out)
	assert.Contains(t, out, "non-negative integer")
}

func TestCheckReservedKeyWarns(t *testing.T) {
	// roast_run overrides ROAST_RUN_ID anyway, so this is only a warning.
	code, out := checkFile(t, "ROAST_RUN_ID=abc\n", cli.Options{})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "reserved for the roast tools")
	assert.Contains(t, out, "ok with warnings")
}

func TestCheckMalformedFile(t *testing.T) {
	code, out := checkFile(t, "NOT AN ASSIGNMENT\n", cli.Options{})
	assert.Equal(t, constants.ExitRuntimeError, code, out)
	assert.Contains(t, out, "not an assignment")
}

func TestCheckMissingExplicitFile(t *testing.T) {
	scrubEnv(t)
	out := &bytes.Buffer{}
	opts := cli.Options{EnvFile: filepath.Join(t.TempDir(), "nope.env")}
	code := run(opts, out)
	assert.Equal(t, constants.ExitRuntimeError, code, out.String())
}

func TestCheckNoFileAtAll(t *testing.T) {
	scrubEnv(t)
	wd, err := os.Getwd()
	require.Nil(t, err)
	require.Nil(t, os.Chdir(t.TempDir()))
	defer func() { require.Nil(t, os.Chdir(wd)) }()

	out := &bytes.Buffer{}
	code := run(cli.Options{}, out)
	assert.Equal(t, constants.ExitOK, code, out.String())
	assert.Contains(t, out.String(), "ok")
}

func TestCheckProbesSkipWhenUnconfigured(t *testing.T) {
	// With nothing configured every probe skips, so -probe adds
	// detail lines without failing the run.
	code, out := checkFile(t, "RUST_LOG=info\n", cli.Options{Probe: true})
	assert.Equal(t, constants.ExitOK, code, out)
	assert.Contains(t, out, "github-token")
	assert.Contains(t, out, "export-path")
	assert.Contains(t, out, "postgres")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "ok\n")
}

func TestCheckProbeFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	code, out := checkFile(t, "ROAST_EXPORT_PATH="+missing+"\n", cli.Options{Probe: true})
	assert.Equal(t, constants.ExitProblems, code, out)
	assert.Contains(t, out, "does not exist")
	assert.Contains(t, out, "configuration has problems")
}
