package cli

import (
	"flag"

	"github.com/roastproject/roast-env/constants"
)

// Options is the union of every flag the roast tools accept. Each
// binary reads the fields it cares about and ignores the rest.
type Options struct {
	EnvFile   string
	PrintHelp bool

	// roast_env_init
	OutFile string
	Force   bool

	// roast_config_check
	Probe  bool
	Strict bool
	Watch  bool

	// roast_config_show
	Format      string
	ShowSecrets bool
	Origin      bool
	Var         string
	PqDSN       bool

	// roast_run
	Overload bool
	PidFile  string
}

var opts = Options{}

var EnvMessage = `If you don't set -env-file on the command line, the tools load the
file named by ROAST_ENV_FILE, then fall back to .env in the working
directory. When none of those exist, only the process environment and
the built-in defaults apply.
`

func Init() {
	flag.StringVar(&opts.EnvFile, "env-file", "", "Path to the env file to load")
	flag.BoolVar(&opts.PrintHelp, "help", false, "Print help message")
	flag.StringVar(&opts.OutFile, "out", "", "Where to write the template (default "+constants.TemplateFileName+")")
	flag.BoolVar(&opts.Force, "force", false, "Overwrite the output file if it exists")
	flag.BoolVar(&opts.Probe, "probe", false, "Also run the live environment probes")
	flag.BoolVar(&opts.Strict, "strict", false, "Treat warnings as failures")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-run the check whenever the env file changes")
	flag.StringVar(&opts.Format, "format", constants.FormatEnv, "Output format: env, json or yaml")
	flag.BoolVar(&opts.ShowSecrets, "show-secrets", false, "Print secret values instead of masking them")
	flag.BoolVar(&opts.Origin, "origin", false, "Annotate each value with the layer it came from")
	flag.StringVar(&opts.Var, "var", "", "Print only the effective value of this variable")
	flag.BoolVar(&opts.PqDSN, "pq-dsn", false, "Print the database settings as a keyword/value DSN")
	flag.BoolVar(&opts.Overload, "overload", false, "Let env file values override the process environment")
	flag.StringVar(&opts.PidFile, "pid-file", "", "Write the child process pid here while it runs")
}

func ParseOpts() Options {
	flag.Parse()
	return opts
}

// Args returns the arguments left after flag parsing, e.g. the
// command roast_run should execute.
func Args() []string {
	return flag.Args()
}

func PrintDefaults() {
	flag.PrintDefaults()
}
