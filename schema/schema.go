// Package schema is the authoritative description of roast's
// environment surface: every recognized variable with its type,
// default and secrecy, the canonical .env.example template, and a
// linter for env files that set these variables.
package schema

import (
	"github.com/roastproject/roast-env/constants"
)

type ValueType string

const (
	TypeString    ValueType = "string"
	TypeInt       ValueType = "int"
	TypePort      ValueType = "port"
	TypePath      ValueType = "path"
	TypeURL       ValueType = "url"
	TypeSSLMode   ValueType = "sslmode"
	TypeLogFilter ValueType = "filter"
)

// KeyDef describes one recognized environment variable. Commented
// marks keys the template ships commented out, and Example is the
// value shown on that commented line. Doc holds the comment lines
// printed above the key in the template; an empty entry renders as
// a blank line.
type KeyDef struct {
	Name      string
	Section   string
	Type      ValueType
	Default   string
	Secret    bool
	Commented bool
	Example   string
	Doc       []string
}

var registry = []KeyDef{
	{
		Name:    constants.EnvGitHubToken,
		Section: constants.SectionGitHub,
		Type:    TypeString,
		Secret:  true,
		Doc: []string{
			"Personal access token used when roast calls the GitHub API.",
			"Leave empty for unauthenticated requests (lower rate limits).",
		},
	},
	{
		Name:      constants.EnvRayonNumThreads,
		Section:   constants.SectionRuntime,
		Type:      TypeInt,
		Default:   "0",
		Commented: true,
		Example:   "8",
		Doc: []string{
			"Number of worker threads for roast's parallel runtime.",
			"Unset or 0 means one thread per core.",
		},
	},
	{
		Name:      constants.EnvRustLog,
		Section:   constants.SectionLogging,
		Type:      TypeLogFilter,
		Default:   constants.DefaultLogFilter,
		Commented: true,
		Example:   "info",
		Doc: []string{
			"",
			`Log level filter, e.g. "info" or "warn,roast::db=debug".`,
			"Unset means info.",
		},
	},
	{
		Name:    constants.EnvAWSAccessKeyID,
		Section: constants.SectionAWS,
		Type:    TypeString,
		Secret:  true,
	},
	{
		Name:    constants.EnvAWSSecretAccessKey,
		Section: constants.SectionAWS,
		Type:    TypeString,
		Secret:  true,
	},
	{
		Name:    constants.EnvAWSRegion,
		Section: constants.SectionAWS,
		Type:    TypeString,
	},
	{
		Name:    constants.EnvAWSS3Bucket,
		Section: constants.SectionAWS,
		Type:    TypeString,
	},
	{
		Name:      constants.EnvDBHost,
		Section:   constants.SectionDatabase,
		Type:      TypeString,
		Commented: true,
		Example:   "localhost",
	},
	{
		Name:      constants.EnvDBPort,
		Section:   constants.SectionDatabase,
		Type:      TypePort,
		Default:   "5432",
		Commented: true,
		Example:   "5432",
	},
	{
		Name:      constants.EnvDBName,
		Section:   constants.SectionDatabase,
		Type:      TypeString,
		Commented: true,
		Example:   "roast",
	},
	{
		Name:      constants.EnvDBUser,
		Section:   constants.SectionDatabase,
		Type:      TypeString,
		Commented: true,
		Example:   "roast",
	},
	{
		Name:      constants.EnvDBPassword,
		Section:   constants.SectionDatabase,
		Type:      TypeString,
		Secret:    true,
		Commented: true,
	},
	{
		Name:      constants.EnvDatabaseURL,
		Section:   constants.SectionDatabase,
		Type:      TypeURL,
		Secret:    true,
		Commented: true,
		Example:   "postgres://${ROAST_DB_USR}:${ROAST_DB_PWD}@${ROAST_DB_HOST}:${ROAST_DB_PORT}/${ROAST_DB_NAME}",
	},
	{
		Name:      constants.EnvDBSSLMode,
		Section:   constants.SectionDatabase,
		Type:      TypeSSLMode,
		Default:   constants.DefaultSSLMode,
		Commented: true,
		Example:   "prefer",
		Doc: []string{
			"",
			"SSL settings, libpq style. The mode is one of disable, allow,",
			"prefer, require, verify-ca or verify-full.",
		},
	},
	{
		Name:      constants.EnvDBSSLRootCert,
		Section:   constants.SectionDatabase,
		Type:      TypePath,
		Commented: true,
		Example:   "/etc/ssl/certs/roast-ca.pem",
	},
	{
		Name:      constants.EnvDBSSLCert,
		Section:   constants.SectionDatabase,
		Type:      TypePath,
		Commented: true,
	},
	{
		Name:      constants.EnvDBSSLKey,
		Section:   constants.SectionDatabase,
		Type:      TypePath,
		Commented: true,
	},
	{
		Name:    constants.EnvExportPath,
		Section: constants.SectionExport,
		Type:    TypePath,
		Doc: []string{
			"Directory where roast writes export artifacts before they are",
			"uploaded. A leading ~ expands to the home directory.",
		},
	},
}

// Registry returns the recognized keys in template order.
func Registry() []KeyDef {
	defs := make([]KeyDef, len(registry))
	copy(defs, registry)
	return defs
}

// Lookup returns the definition of the named key.
func Lookup(name string) (KeyDef, bool) {
	for _, def := range registry {
		if def.Name == name {
			return def, true
		}
	}
	return KeyDef{}, false
}

// IsRecognized returns true if name is a key roast reads.
func IsRecognized(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Secrets returns the names of keys whose values must not be printed
// unredacted.
func Secrets() []string {
	names := make([]string, 0, len(registry))
	for _, def := range registry {
		if def.Secret {
			names = append(names, def.Name)
		}
	}
	return names
}
