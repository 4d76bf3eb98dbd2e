package common

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/util"
	"github.com/roastproject/roast-env/util/logger"
)

// Validate checks the effective settings against the schema's rules,
// accumulating every finding. Unset sections are fine; the rules
// only fire on values that are present but unusable, or on settings
// that only make sense together.
func (s *Settings) Validate() *Report {
	report := &Report{}
	s.validateRuntime(report)
	s.validateLogging(report)
	s.validateAWS(report)
	s.validateDatabase(report)
	s.validateExport(report)
	return report
}

func (s *Settings) validateRuntime(report *Report) {
	raw := s.raw[constants.EnvRayonNumThreads]
	if raw == "" {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		report.AddError(constants.EnvRayonNumThreads,
			"must be a non-negative integer, not %q", raw)
	}
}

func (s *Settings) validateLogging(report *Report) {
	if s.Logging.Filter == "" {
		return
	}
	if _, err := logger.ParseFilter(s.Logging.Filter); err != nil {
		report.AddError(constants.EnvRustLog, "%v", err)
	}
}

func (s *Settings) validateAWS(report *Report) {
	if s.AWS.AccessKeyID != "" && s.AWS.SecretAccessKey == "" {
		report.AddError(constants.EnvAWSSecretAccessKey,
			"%s is set, so %s must be set too",
			constants.EnvAWSAccessKeyID, constants.EnvAWSSecretAccessKey)
	}
	if s.AWS.SecretAccessKey != "" && s.AWS.AccessKeyID == "" {
		report.AddError(constants.EnvAWSAccessKeyID,
			"%s is set, so %s must be set too",
			constants.EnvAWSSecretAccessKey, constants.EnvAWSAccessKeyID)
	}
	if s.AWS.Bucket != "" && s.AWS.Region == "" {
		report.AddWarning(constants.EnvAWSRegion,
			"%s is set but %s is not; clients will guess a region",
			constants.EnvAWSS3Bucket, constants.EnvAWSRegion)
	}
}

func (s *Settings) validateDatabase(report *Report) {
	db := &s.Database

	if db.URL != "" {
		s.validateDatabaseURL(report)
		if db.Host != "" {
			report.AddWarning(constants.EnvDatabaseURL,
				"both %s and %s are set; the URL wins",
				constants.EnvDatabaseURL, constants.EnvDBHost)
		}
	}

	if raw := s.raw[constants.EnvDBPort]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 65535 {
			report.AddError(constants.EnvDBPort,
				"must be a port number between 1 and 65535, not %q", raw)
		}
	}

	if db.SSLMode != "" && !util.StringListContains(constants.SSLModes, db.SSLMode) {
		report.AddError(constants.EnvDBSSLMode,
			"must be one of %s", strings.Join(constants.SSLModes, ", "))
	}

	if db.SSLCert != "" && db.SSLKey == "" {
		report.AddError(constants.EnvDBSSLKey,
			"%s is set, so %s must be set too",
			constants.EnvDBSSLCert, constants.EnvDBSSLKey)
	}
	if db.SSLKey != "" && db.SSLCert == "" {
		report.AddError(constants.EnvDBSSLCert,
			"%s is set, so %s must be set too",
			constants.EnvDBSSLKey, constants.EnvDBSSLCert)
	}

	if db.SSLMode == constants.SSLModeVerifyCA || db.SSLMode == constants.SSLModeVerifyFull {
		if db.SSLRootCert == "" {
			report.AddWarning(constants.EnvDBSSLRootCert,
				"sslmode %s verifies the server certificate; set %s",
				db.SSLMode, constants.EnvDBSSLRootCert)
		}
	}
	for _, certPath := range []struct{ key, path string }{
		{constants.EnvDBSSLRootCert, db.SSLRootCert},
		{constants.EnvDBSSLCert, db.SSLCert},
		{constants.EnvDBSSLKey, db.SSLKey},
	} {
		if certPath.path != "" && !util.IsFile(certPath.path) {
			report.AddWarning(certPath.key, "file %s does not exist", certPath.path)
		}
	}
}

func (s *Settings) validateDatabaseURL(report *Report) {
	raw := s.Database.URL
	u, err := url.Parse(raw)
	if err != nil {
		report.AddError(constants.EnvDatabaseURL, "not a valid URL: %v", err)
		return
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		report.AddError(constants.EnvDatabaseURL,
			"must use the postgres:// or postgresql:// scheme, not %q", u.Scheme)
		return
	}
	if u.Host == "" {
		report.AddError(constants.EnvDatabaseURL, "has no host")
	}
	if strings.TrimPrefix(u.Path, "/") == "" {
		report.AddError(constants.EnvDatabaseURL, "has no database name")
	}
	if mode := u.Query().Get("sslmode"); mode != "" && !util.StringListContains(constants.SSLModes, mode) {
		report.AddError(constants.EnvDatabaseURL,
			"sslmode must be one of %s", strings.Join(constants.SSLModes, ", "))
	}
}

func (s *Settings) validateExport(report *Report) {
	if s.Export.Path == "" {
		return
	}
	if util.FileExists(s.Export.Path) && !util.IsDirectory(s.Export.Path) {
		report.AddError(constants.EnvExportPath,
			"%s exists and is not a directory", s.Export.Path)
	}
}
