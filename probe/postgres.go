package probe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
)

// PostgresProbe opens a connection to the configured database and
// pings it. It runs no queries; reachability and credentials are the
// whole question.
type PostgresProbe struct {
	settings *common.Settings

	// OpenDB opens the connection. Tests swap in a mock driver.
	OpenDB func(dsn string) (*sql.DB, error)
}

func NewPostgresProbe(settings *common.Settings) *PostgresProbe {
	return &PostgresProbe{
		settings: settings,
		OpenDB: func(dsn string) (*sql.DB, error) {
			return sql.Open("postgres", dsn)
		},
	}
}

func (p *PostgresProbe) Name() string { return "postgres" }
func (p *PostgresProbe) Kind() string { return "network" }

func (p *PostgresProbe) Check(ctx context.Context) Result {
	start := time.Now()
	db := &p.settings.Database
	if !db.IsConfigured() {
		return result(p, start, constants.ProbeSkipped,
			fmt.Sprintf("neither %s nor %s is set",
				constants.EnvDatabaseURL, constants.EnvDBHost))
	}
	effective, err := db.EffectiveURL()
	if err != nil {
		return result(p, start, constants.ProbeFail, err.Error())
	}
	conn, err := p.OpenDB(effective)
	if err != nil {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("cannot open connection: %v", err))
	}
	defer conn.Close()
	if err := conn.PingContext(ctx); err != nil {
		return result(p, start, constants.ProbeFail,
			fmt.Sprintf("ping failed: %v", err))
	}
	return result(p, start, constants.ProbeOK,
		fmt.Sprintf("connected to %s", common.RedactURL(effective)))
}
