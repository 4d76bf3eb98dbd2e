package constants

import "time"

const (
	DefaultEnvFile   = ".env"
	TemplateFileName = ".env.example"

	// Variables recognized in the roast environment. These are the
	// only keys the schema, the template and the settings loader
	// know about.
	EnvGitHubToken        = "GITHUB_TOKEN"
	EnvRayonNumThreads    = "RAYON_NUM_THREADS"
	EnvRustLog            = "RUST_LOG"
	EnvAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvAWSRegion          = "AWS_REGION"
	EnvAWSS3Bucket        = "AWS_S3_BUCKET"
	EnvDBHost             = "ROAST_DB_HOST"
	EnvDBPort             = "ROAST_DB_PORT"
	EnvDBName             = "ROAST_DB_NAME"
	EnvDBUser             = "ROAST_DB_USR"
	EnvDBPassword         = "ROAST_DB_PWD"
	EnvDatabaseURL        = "ROAST_DATABASE_URL"
	EnvDBSSLMode          = "ROAST_DB_SSL_MODE"
	EnvDBSSLRootCert      = "ROAST_DB_SSL_ROOT_CERT"
	EnvDBSSLCert          = "ROAST_DB_SSL_CERT"
	EnvDBSSLKey           = "ROAST_DB_SSL_KEY"
	EnvExportPath         = "ROAST_EXPORT_PATH"

	// Variables set by the tools themselves, never read from the
	// template.
	EnvEnvFile = "ROAST_ENV_FILE"
	EnvRunID   = "ROAST_RUN_ID"

	SectionGitHub   = "GitHub"
	SectionRuntime  = "Runtime"
	SectionLogging  = "Logging"
	SectionAWS      = "AWS"
	SectionDatabase = "Database"
	SectionExport   = "Export"

	SSLModeDisable    = "disable"
	SSLModeAllow      = "allow"
	SSLModePrefer     = "prefer"
	SSLModeRequire    = "require"
	SSLModeVerifyCA   = "verify-ca"
	SSLModeVerifyFull = "verify-full"

	SeverityError   = "error"
	SeverityWarning = "warning"

	ProbeOK      = "ok"
	ProbeWarn    = "warn"
	ProbeFail    = "fail"
	ProbeSkipped = "skipped"

	FormatEnv  = "env"
	FormatJSON = "json"
	FormatYAML = "yaml"

	DefaultDBPort       = 5432
	DefaultSSLMode      = SSLModePrefer
	DefaultLogFilter    = "info"
	DefaultProbeTimeout = 10 * time.Second

	ExitOK              = 0
	ExitProblems        = 1
	ExitRuntimeError    = 2
	ExitCommandNotFound = 127
)

// SSLModes lists the accepted values for ROAST_DB_SSL_MODE, in order
// of increasing strictness.
var SSLModes = []string{
	SSLModeDisable,
	SSLModeAllow,
	SSLModePrefer,
	SSLModeRequire,
	SSLModeVerifyCA,
	SSLModeVerifyFull,
}

// EnvKeys lists every recognized variable in template order.
var EnvKeys = []string{
	EnvGitHubToken,
	EnvRayonNumThreads,
	EnvRustLog,
	EnvAWSAccessKeyID,
	EnvAWSSecretAccessKey,
	EnvAWSRegion,
	EnvAWSS3Bucket,
	EnvDBHost,
	EnvDBPort,
	EnvDBName,
	EnvDBUser,
	EnvDBPassword,
	EnvDatabaseURL,
	EnvDBSSLMode,
	EnvDBSSLRootCert,
	EnvDBSSLCert,
	EnvDBSSLKey,
	EnvExportPath,
}

// Formats lists the output formats roast_config_show understands.
var Formats = []string{
	FormatEnv,
	FormatJSON,
	FormatYAML,
}
