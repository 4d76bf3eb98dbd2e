package common

import (
	"fmt"
	"net/url"

	"github.com/lib/pq"
	"github.com/roastproject/roast-env/constants"
)

// IsConfigured returns true when either an explicit URL or at least
// a host is present.
func (db *DatabaseSettings) IsConfigured() bool {
	return db.URL != "" || db.Host != ""
}

// EffectiveURL returns ROAST_DATABASE_URL when set, otherwise a URL
// composed from the individual ROAST_DB_* parts. User and password
// are escaped, and the SSL settings travel as query parameters.
func (db *DatabaseSettings) EffectiveURL() (string, error) {
	if db.URL != "" {
		return db.URL, nil
	}
	if db.Host == "" {
		return "", fmt.Errorf("database is not configured: set %s or the %s family",
			constants.EnvDatabaseURL, constants.EnvDBHost)
	}
	u := &url.URL{Scheme: "postgres", Host: db.Host}
	if db.Port > 0 {
		u.Host = fmt.Sprintf("%s:%d", db.Host, db.Port)
	}
	if db.User != "" {
		if db.Password != "" {
			u.User = url.UserPassword(db.User, db.Password)
		} else {
			u.User = url.User(db.User)
		}
	}
	if db.Name != "" {
		u.Path = "/" + db.Name
	}
	query := url.Values{}
	if db.SSLMode != "" {
		query.Set("sslmode", db.SSLMode)
	}
	if db.SSLRootCert != "" {
		query.Set("sslrootcert", db.SSLRootCert)
	}
	if db.SSLCert != "" {
		query.Set("sslcert", db.SSLCert)
	}
	if db.SSLKey != "" {
		query.Set("sslkey", db.SSLKey)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// KeywordValueDSN translates the effective URL into libpq's
// keyword/value form ("host=... dbname=..."), the format psql and
// many clients accept directly.
func (db *DatabaseSettings) KeywordValueDSN() (string, error) {
	effective, err := db.EffectiveURL()
	if err != nil {
		return "", err
	}
	return pq.ParseURL(effective)
}

// RedactURL masks the password component of a database URL for
// display. Input that does not parse is masked entirely, since there
// is no way to tell which part of it holds the password.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redactedMask
	}
	if u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), redactedMask)
	}
	return u.String()
}
