package main

import (
	"fmt"
	"io"
	"os"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/schema"
	"github.com/roastproject/roast-env/util"
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
	os.Exit(run(opts, os.Stderr))
}

func run(opts cli.Options, errOut io.Writer) int {
	outFile := opts.OutFile
	if outFile == "" {
		outFile = constants.TemplateFileName
	}
	if util.FileExists(outFile) && !opts.Force {
		fmt.Fprintf(errOut, "%s already exists; use -force to overwrite it\n", outFile)
		return constants.ExitProblems
	}
	if err := os.WriteFile(outFile, []byte(schema.Template()), 0644); err != nil {
		fmt.Fprintf(errOut, "cannot write %s: %v\n", outFile, err)
		return constants.ExitRuntimeError
	}
	fmt.Printf("wrote %s\n", outFile)
	return constants.ExitOK
}

func printHelp() {
	message := `
roast_env_init writes the canonical roast environment template to
.env.example in the working directory, or to the file named by -out.
It refuses to overwrite an existing file unless -force is set.

Copy the template to .env, fill in the values your setup needs, and
check the result with roast_config_check.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
