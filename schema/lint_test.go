package schema_test

import (
	"testing"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/schema"
	"github.com/roastproject/roast-env/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkString(t *testing.T, content string) []schema.Problem {
	t.Helper()
	doc, err := envfile.ParseString(content)
	require.Nil(t, err)
	return schema.Check(doc)
}

func TestCheckCleanFile(t *testing.T) {
	data, err := testutil.ReadEnvFile("sample.env")
	require.Nil(t, err)
	assert.Empty(t, checkString(t, string(data)))
}

func TestCheckUnknownKey(t *testing.T) {
	problems := checkString(t, "ROSAT_DB_HOST=localhost\n")
	require.Equal(t, 1, len(problems))
	assert.Equal(t, constants.SeverityWarning, problems[0].Severity)
	assert.Equal(t, 1, problems[0].Line)
	assert.Equal(t, "ROSAT_DB_HOST", problems[0].Key)
	assert.Contains(t, problems[0].Message, "unknown variable")
}

func TestCheckReservedKey(t *testing.T) {
	problems := checkString(t, "ROAST_RUN_ID=abc123\n")
	require.Equal(t, 1, len(problems))
	assert.Equal(t, constants.SeverityWarning, problems[0].Severity)
	assert.Contains(t, problems[0].Message, "reserved")
}

func TestCheckDuplicateKey(t *testing.T) {
	problems := checkString(t, "ROAST_DB_HOST=a\n\nROAST_DB_HOST=b\n")
	require.Equal(t, 1, len(problems))
	assert.Equal(t, 3, problems[0].Line)
	assert.Contains(t, problems[0].Message, "already set at line 1")
}

func TestCheckTypeRules(t *testing.T) {
	inputs := []string{
		"RAYON_NUM_THREADS=-2\n",
		"RAYON_NUM_THREADS=four\n",
		"ROAST_DB_PORT=0\n",
		"ROAST_DB_PORT=70000\n",
		"ROAST_DB_SSL_MODE=paranoid\n",
		"RUST_LOG==debug\n",
		"ROAST_DATABASE_URL=mysql://host/db\n",
	}
	expectedMessages := []string{
		"non-negative integer",
		"non-negative integer",
		"between 1 and 65535",
		"between 1 and 65535",
		"must be one of disable, allow, prefer, require, verify-ca, verify-full",
		"has no target",
		"postgres://",
	}
	for i, input := range inputs {
		problems := checkString(t, input)
		require.Equal(t, 1, len(problems), input)
		assert.Equal(t, constants.SeverityError, problems[0].Severity, input)
		assert.Equal(t, 1, problems[0].Line, input)
		assert.Contains(t, problems[0].Message, expectedMessages[i], input)
	}
}

func TestCheckAcceptsValidValues(t *testing.T) {
	inputs := []string{
		"RAYON_NUM_THREADS=0\n",
		"RAYON_NUM_THREADS=16\n",
		"ROAST_DB_PORT=5432\n",
		"ROAST_DB_SSL_MODE=verify-full\n",
		"RUST_LOG=warn,roast::db=debug\n",
		"ROAST_DATABASE_URL=postgresql://u:p@h:5432/db\n",
		"GITHUB_TOKEN=\n",
	}
	for _, input := range inputs {
		assert.Empty(t, checkString(t, input), input)
	}
}

func TestCheckReferences(t *testing.T) {
	problems := checkString(t, "ROAST_DATABASE_URL=postgres://${ROAST_DB_USR}@localhost/roast\n")
	require.Equal(t, 1, len(problems))
	assert.Equal(t, constants.SeverityWarning, problems[0].Severity)
	assert.Contains(t, problems[0].Message, "does not define")

	problems = checkString(t, "ROAST_DATABASE_URL=postgres://${ROAST_DB_USR}@localhost/roast\nROAST_DB_USR=roast\n")
	require.Equal(t, 1, len(problems))
	assert.Contains(t, problems[0].Message, "before line 2")

	problems = checkString(t, "ROAST_DB_USR=roast\nROAST_DATABASE_URL=postgres://${ROAST_DB_USR}@localhost/roast\n")
	assert.Empty(t, problems)
}

func TestCheckMalformedReference(t *testing.T) {
	problems := checkString(t, "ROAST_DB_HOST=${OOPS\n")
	require.Equal(t, 1, len(problems))
	assert.Equal(t, constants.SeverityWarning, problems[0].Severity)
	assert.Contains(t, problems[0].Message, "malformed")
}

func TestHasErrors(t *testing.T) {
	assert.False(t, schema.HasErrors(nil))
	assert.False(t, schema.HasErrors(checkString(t, "ROSAT_DB_HOST=x\n")))
	assert.True(t, schema.HasErrors(checkString(t, "ROAST_DB_PORT=0\n")))
}

func TestProblemString(t *testing.T) {
	p := schema.Problem{
		Severity: constants.SeverityError,
		Line:     12,
		Key:      "ROAST_DB_PORT",
		Message:  "must be a port number between 1 and 65535, not \"0\"",
	}
	assert.Equal(t,
		`line 12: [error] ROAST_DB_PORT: must be a port number between 1 and 65535, not "0"`,
		p.String())
}
