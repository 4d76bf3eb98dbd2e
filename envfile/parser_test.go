package envfile_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	doc, err := envfile.ParseString(`# database settings

ROAST_DB_HOST=localhost
export ROAST_DB_PORT=5432
ROAST_DB_PWD='s3cr3t#pwd'
ROAST_DB_NAME="roast"
`)
	require.Nil(t, err)
	require.Equal(t, 6, len(doc.Lines))

	expectedKinds := []envfile.LineKind{
		envfile.LineComment,
		envfile.LineBlank,
		envfile.LinePair,
		envfile.LinePair,
		envfile.LinePair,
		envfile.LinePair,
	}
	for i, kind := range expectedKinds {
		assert.Equal(t, kind, doc.Lines[i].Kind, "line %d", i+1)
		assert.Equal(t, i+1, doc.Lines[i].Num)
	}

	assert.Equal(t, []string{
		"ROAST_DB_HOST",
		"ROAST_DB_PORT",
		"ROAST_DB_PWD",
		"ROAST_DB_NAME",
	}, doc.Keys())

	assert.Equal(t, "localhost", doc.Get("ROAST_DB_HOST"))
	assert.Equal(t, "5432", doc.Get("ROAST_DB_PORT"))
	assert.Equal(t, "s3cr3t#pwd", doc.Get("ROAST_DB_PWD"))
	assert.Equal(t, "roast", doc.Get("ROAST_DB_NAME"))

	assert.True(t, doc.Lines[3].Exported)
	assert.False(t, doc.Lines[2].Exported)
	assert.Equal(t, envfile.QuoteNone, doc.Lines[2].Quote)
	assert.Equal(t, envfile.QuoteSingle, doc.Lines[4].Quote)
	assert.Equal(t, envfile.QuoteDouble, doc.Lines[5].Quote)
}

func TestParseValues(t *testing.T) {
	inputs := []string{
		"K=",
		"K=plain",
		"K=hello world",
		"K=trimmed   ",
		"K=  padded",
		"K=value # comment",
		"K=no#comment",
		`K="quoted # not a comment"`,
		`K='literal ${REF}'`,
		`K="tab\there"`,
		"K=v # c",
	}
	expected := []string{
		"",
		"plain",
		"hello world",
		"trimmed",
		"padded",
		"value",
		"no#comment",
		"quoted # not a comment",
		"literal ${REF}",
		`tab\there`,
		"v",
	}
	for i, input := range inputs {
		doc, err := envfile.ParseString(input)
		require.Nil(t, err, input)
		assert.Equal(t, expected[i], doc.Get("K"), input)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"just some words",
		"2BAD=value",
		"BAD KEY=value",
		`K="unterminated`,
		"K='unterminated",
		`K="closed" trailing`,
	}
	expectedMessages := []string{
		"not an assignment",
		"invalid variable name",
		"invalid variable name",
		"unterminated double-quoted value",
		"unterminated single-quoted value",
		"unexpected text after closing quote",
	}
	for i, input := range inputs {
		_, err := envfile.ParseString("GOOD=1\n" + input + "\n")
		require.NotNil(t, err, input)
		assert.Contains(t, err.Error(), expectedMessages[i], input)

		var parseErr *envfile.ParseError
		require.True(t, errors.As(err, &parseErr), input)
		assert.Equal(t, 2, parseErr.Line, input)
	}
}

func TestParseErrorIncludesFile(t *testing.T) {
	_, err := envfile.Parse(strings.NewReader("oops\n"), "conf/.env")
	require.NotNil(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "conf/.env:1:"), err.Error())
}

func TestParseFile(t *testing.T) {
	doc, err := envfile.ParseFile(testutil.PathToEnvFile("sample.env"))
	require.Nil(t, err)
	assert.Equal(t, testutil.PathToEnvFile("sample.env"), doc.Path)
	assert.Equal(t, 10, len(doc.Pairs()))
	assert.Equal(t, "info,roast::db=debug", doc.Get("RUST_LOG"))
	assert.True(t, doc.Lines[2].Exported)
}

func TestParseFileMissing(t *testing.T) {
	_, err := envfile.ParseFile(testutil.PathToEnvFile("no_such.env"))
	require.NotNil(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestRoundTrip(t *testing.T) {
	original, err := testutil.ReadEnvFile("sample.env")
	require.Nil(t, err)
	doc, err := envfile.ParseString(string(original))
	require.Nil(t, err)
	assert.Equal(t, string(original), doc.String())
}

func TestParseNormalizesCRLF(t *testing.T) {
	doc, err := envfile.ParseString("A=1\r\nB=2\r\n")
	require.Nil(t, err)
	assert.Equal(t, "1", doc.Get("A"))
	assert.Equal(t, "2", doc.Get("B"))
	assert.Equal(t, "A=1\nB=2\n", doc.String())
}

func TestParsePreservesMissingFinalNewline(t *testing.T) {
	doc, err := envfile.ParseString("A=1")
	require.Nil(t, err)
	assert.Equal(t, "A=1", doc.String())
}

func TestParseEmpty(t *testing.T) {
	doc, err := envfile.ParseString("")
	require.Nil(t, err)
	assert.Empty(t, doc.Lines)
	assert.Equal(t, "", doc.String())
}

func TestValidKey(t *testing.T) {
	valid := []string{"A", "_A", "ROAST_DB_HOST", "a1", "_1"}
	invalid := []string{"", "1A", "A-B", "A B", "A.B", "ROAST DB"}
	for _, name := range valid {
		assert.True(t, envfile.ValidKey(name), name)
	}
	for _, name := range invalid {
		assert.False(t, envfile.ValidKey(name), name)
	}
}
