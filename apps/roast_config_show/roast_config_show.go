package main

import (
	"fmt"
	"io"
	"os"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
	"github.com/roastproject/roast-env/schema"
	"github.com/roastproject/roast-env/util/cli"
)

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	if opts.PrintHelp {
		printHelp()
		cli.PrintDefaults()
		os.Exit(constants.ExitOK)
	}
	os.Exit(run(opts, os.Stdout))
}

func run(opts cli.Options, out io.Writer) int {
	path, explicit := common.ResolveEnvFile(opts.EnvFile)
	settings, err := common.LoadSettings(path, explicit)
	if err != nil {
		fmt.Fprintln(out, err)
		return constants.ExitRuntimeError
	}

	if opts.Var != "" {
		if !schema.IsRecognized(opts.Var) {
			fmt.Fprintf(out, "unknown variable %s\n", opts.Var)
			return constants.ExitProblems
		}
		fmt.Fprintln(out, settings.DisplayValue(opts.Var, opts.ShowSecrets))
		return constants.ExitOK
	}

	if opts.PqDSN {
		dsn, err := settings.Database.KeywordValueDSN()
		if err != nil {
			fmt.Fprintln(out, err)
			return constants.ExitProblems
		}
		fmt.Fprintln(out, dsn)
		return constants.ExitOK
	}

	err = settings.Render(out, common.RenderOptions{
		Format:      opts.Format,
		ShowSecrets: opts.ShowSecrets,
		Origin:      opts.Origin,
	})
	if err != nil {
		fmt.Fprintln(out, err)
		return constants.ExitProblems
	}
	return constants.ExitOK
}

func printHelp() {
	message := `
roast_config_show prints the effective roast configuration after
layering: process environment over env file over built-in defaults.

Secrets are masked unless -show-secrets is set. Use -var KEY to print
a single value for scripting, or -pq-dsn to print the database
settings as a libpq keyword/value string. Note that -pq-dsn includes
the password.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
