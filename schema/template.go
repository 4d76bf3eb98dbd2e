package schema

import (
	"strings"

	"github.com/roastproject/roast-env/constants"
)

var templateHeader = []string{
	"Environment configuration for the roast application.",
	"Copy this file to .env and adjust the values. Empty values are",
	"treated as unset.",
}

// templateGroups arranges the registry under the template's informal
// comment headers. Groups are presentational: the Rayon group also
// carries RUST_LOG, while KeyDef.Section stays logical.
var templateGroups = []struct {
	header string
	doc    []string
	keys   []string
}{
	{
		header: "GitHub",
		keys:   []string{constants.EnvGitHubToken},
	},
	{
		header: "Rayon thread pool size",
		keys:   []string{constants.EnvRayonNumThreads, constants.EnvRustLog},
	},
	{
		header: "AWS",
		doc:    []string{"Credentials and location for the bucket roast exports to."},
		keys: []string{
			constants.EnvAWSAccessKeyID,
			constants.EnvAWSSecretAccessKey,
			constants.EnvAWSRegion,
			constants.EnvAWSS3Bucket,
		},
	},
	{
		header: "Database",
		doc: []string{
			"Either set the individual parts and let roast compose the URL,",
			"or set ROAST_DATABASE_URL directly. The URL wins when both are set.",
		},
		keys: []string{
			constants.EnvDBHost,
			constants.EnvDBPort,
			constants.EnvDBName,
			constants.EnvDBUser,
			constants.EnvDBPassword,
			constants.EnvDatabaseURL,
			constants.EnvDBSSLMode,
			constants.EnvDBSSLRootCert,
			constants.EnvDBSSLCert,
			constants.EnvDBSSLKey,
		},
	},
	{
		header: "Export",
		keys:   []string{constants.EnvExportPath},
	},
}

// Template returns the canonical .env.example content. The file
// shipped at the repository root must match it byte for byte.
func Template() string {
	var b strings.Builder
	for _, line := range templateHeader {
		writeComment(&b, line)
	}
	for _, group := range templateGroups {
		b.WriteByte('\n')
		writeComment(&b, group.header)
		for _, line := range group.doc {
			writeComment(&b, line)
		}
		for _, name := range group.keys {
			def, _ := Lookup(name)
			for _, line := range def.Doc {
				writeComment(&b, line)
			}
			if def.Commented {
				b.WriteString("# ")
			}
			b.WriteString(def.Name)
			b.WriteByte('=')
			if def.Commented {
				b.WriteString(def.Example)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// writeComment writes a "# " comment line; an empty string renders
// as a blank separator line.
func writeComment(b *strings.Builder, line string) {
	if line == "" {
		b.WriteByte('\n')
		return
	}
	b.WriteString("# ")
	b.WriteString(line)
	b.WriteByte('\n')
}
