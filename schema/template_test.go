package schema_test

import (
	"os"
	"path"
	"testing"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/schema"
	"github.com/roastproject/roast-env/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateMatchesShippedFile(t *testing.T) {
	shipped, err := os.ReadFile(path.Join(testutil.ProjectRoot(), constants.TemplateFileName))
	require.Nil(t, err)
	assert.Equal(t, string(shipped), schema.Template())
}

func TestTemplateParsesClean(t *testing.T) {
	doc, err := envfile.ParseString(schema.Template())
	require.Nil(t, err)
	assert.Empty(t, schema.Check(doc))

	// Only the uncommented keys parse as assignments, all empty.
	assert.Equal(t, []string{
		constants.EnvGitHubToken,
		constants.EnvAWSAccessKeyID,
		constants.EnvAWSSecretAccessKey,
		constants.EnvAWSRegion,
		constants.EnvAWSS3Bucket,
		constants.EnvExportPath,
	}, doc.Keys())
	for _, key := range doc.Keys() {
		assert.Equal(t, "", doc.Get(key), key)
	}
}

func TestTemplateCoversRegistry(t *testing.T) {
	text := schema.Template()
	for _, def := range schema.Registry() {
		if def.Commented {
			assert.Contains(t, text, "\n# "+def.Name+"="+def.Example+"\n", def.Name)
		} else {
			assert.Contains(t, text, "\n"+def.Name+"=\n", def.Name)
		}
	}
}
