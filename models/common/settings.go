// Package common holds the typed settings roast's tools share: the
// effective configuration loaded from the process environment, an
// env file and the schema defaults, plus validation and rendering.
package common

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/schema"
	"github.com/roastproject/roast-env/util"
	"github.com/spf13/viper"
)

// Source says where an effective value came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
	SourceUnset   Source = "unset"
)

type GitHubSettings struct {
	Token string
}

type RuntimeSettings struct {
	// NumThreads is RAYON_NUM_THREADS; zero means one thread per core.
	NumThreads int
}

// EffectiveThreads returns the parallelism the configuration asks
// for, resolving zero to the machine's core count.
func (r RuntimeSettings) EffectiveThreads() int {
	if r.NumThreads > 0 {
		return r.NumThreads
	}
	return runtime.NumCPU()
}

type LoggingSettings struct {
	// Filter is the RUST_LOG value, e.g. "warn,roast::db=debug".
	Filter string
}

type AWSSettings struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
}

// HasCredentials returns true when both halves of the static
// credential pair are present.
func (a AWSSettings) HasCredentials() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != ""
}

// IsConfigured returns true when a bucket is named.
func (a AWSSettings) IsConfigured() bool {
	return a.Bucket != ""
}

type DatabaseSettings struct {
	URL         string
	Host        string
	Port        int
	Name        string
	User        string
	Password    string
	SSLMode     string
	SSLRootCert string
	SSLCert     string
	SSLKey      string
}

type ExportSettings struct {
	// Path is ROAST_EXPORT_PATH with a leading ~ already expanded.
	Path string
}

// IsConfigured returns true when an export directory is named.
func (e ExportSettings) IsConfigured() bool {
	return e.Path != ""
}

// Settings is the typed view of roast's environment surface after
// precedence is applied: process environment over env file over
// schema defaults. An empty value at any layer counts as unset.
type Settings struct {
	// EnvFile is the path of the env file that was loaded, or empty
	// when none was found.
	EnvFile  string
	GitHub   GitHubSettings
	Runtime  RuntimeSettings
	Logging  LoggingSettings
	AWS      AWSSettings
	Database DatabaseSettings
	Export   ExportSettings

	raw     map[string]string
	sources map[string]Source
}

// LoadSettings builds Settings from the process environment, the env
// file at file (skipped when empty), and the schema defaults. A
// missing file is an error only when required is true; a malformed
// file is always an error.
func LoadSettings(file string, required bool) (*Settings, error) {
	v := viper.New()
	for _, def := range schema.Registry() {
		if def.Default != "" {
			v.SetDefault(def.Name, def.Default)
		}
	}

	fileValues := make(map[string]string)
	loadedFile := ""
	if file != "" {
		doc, err := envfile.ParseFile(file)
		if err != nil {
			if os.IsNotExist(err) && !required {
				err = nil
			}
			if err != nil {
				return nil, err
			}
		} else {
			fileValues = doc.Resolve(envfile.EnvironMap(os.Environ()))
			loadedFile = file
			merged := make(map[string]interface{}, len(fileValues))
			for key, value := range fileValues {
				if value != "" {
					merged[key] = value
				}
			}
			if err := v.MergeConfigMap(merged); err != nil {
				return nil, err
			}
		}
	}

	// The process environment is the top layer. Empty means unset,
	// so blank variables never shadow file values or defaults.
	for _, def := range schema.Registry() {
		if value, ok := os.LookupEnv(def.Name); ok && value != "" {
			v.Set(def.Name, value)
		}
	}

	settings := &Settings{
		EnvFile: loadedFile,
		raw:     make(map[string]string, len(constants.EnvKeys)),
		sources: make(map[string]Source, len(constants.EnvKeys)),
	}
	for _, def := range schema.Registry() {
		value := v.GetString(def.Name)
		settings.raw[def.Name] = value
		settings.sources[def.Name] = resolveSource(def, fileValues, value)
	}
	settings.assignTyped()
	return settings, nil
}

func resolveSource(def schema.KeyDef, fileValues map[string]string, effective string) Source {
	if value, ok := os.LookupEnv(def.Name); ok && value != "" {
		return SourceEnv
	}
	if fileValues[def.Name] != "" {
		return SourceFile
	}
	if def.Default != "" && effective == def.Default {
		return SourceDefault
	}
	return SourceUnset
}

// assignTyped copies the raw effective values into the typed section
// structs. Unconvertible numbers become zero values here; Validate
// reports them.
func (s *Settings) assignTyped() {
	s.GitHub.Token = s.raw[constants.EnvGitHubToken]
	s.Runtime.NumThreads, _ = strconv.Atoi(s.raw[constants.EnvRayonNumThreads])
	s.Logging.Filter = s.raw[constants.EnvRustLog]
	s.AWS.AccessKeyID = s.raw[constants.EnvAWSAccessKeyID]
	s.AWS.SecretAccessKey = s.raw[constants.EnvAWSSecretAccessKey]
	s.AWS.Region = s.raw[constants.EnvAWSRegion]
	s.AWS.Bucket = s.raw[constants.EnvAWSS3Bucket]
	s.Database.URL = s.raw[constants.EnvDatabaseURL]
	s.Database.Host = s.raw[constants.EnvDBHost]
	s.Database.Port, _ = strconv.Atoi(s.raw[constants.EnvDBPort])
	s.Database.Name = s.raw[constants.EnvDBName]
	s.Database.User = s.raw[constants.EnvDBUser]
	s.Database.Password = s.raw[constants.EnvDBPassword]
	s.Database.SSLMode = s.raw[constants.EnvDBSSLMode]
	s.Database.SSLRootCert = s.raw[constants.EnvDBSSLRootCert]
	s.Database.SSLCert = s.raw[constants.EnvDBSSLCert]
	s.Database.SSLKey = s.raw[constants.EnvDBSSLKey]

	exportPath := s.raw[constants.EnvExportPath]
	if expanded, err := util.ExpandTilde(exportPath); err == nil {
		exportPath = expanded
	}
	s.Export.Path = exportPath
}

// EffectiveValue returns the post-precedence string value of a key.
func (s *Settings) EffectiveValue(key string) string {
	return s.raw[key]
}

// Source reports where a key's effective value came from.
func (s *Settings) Source(key string) Source {
	if source, ok := s.sources[key]; ok {
		return source
	}
	return SourceUnset
}

// Values returns a copy of all effective values, keyed by variable
// name.
func (s *Settings) Values() map[string]string {
	values := make(map[string]string, len(s.raw))
	for key, value := range s.raw {
		values[key] = value
	}
	return values
}

// ResolveEnvFile decides which env file a tool should load: the
// explicit flag value first, then ROAST_ENV_FILE, then ./.env when
// it exists. Returns the path and whether the choice was explicit
// (explicit files must exist).
func ResolveEnvFile(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if fromEnv := os.Getenv(constants.EnvEnvFile); fromEnv != "" {
		return fromEnv, true
	}
	if util.FileExists(constants.DefaultEnvFile) {
		return constants.DefaultEnvFile, false
	}
	return "", false
}

// String identifies the settings for log lines: the file loaded and
// how many keys are set.
func (s *Settings) String() string {
	set := 0
	for _, value := range s.raw {
		if value != "" {
			set++
		}
	}
	file := s.EnvFile
	if file == "" {
		file = "(no env file)"
	}
	return fmt.Sprintf("%s, %d of %d keys set", file, set, len(s.raw))
}
