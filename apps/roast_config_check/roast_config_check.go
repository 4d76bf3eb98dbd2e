package main

import (
	ctx "context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/models/common"
	"github.com/roastproject/roast-env/probe"
	"github.com/roastproject/roast-env/schema"
	"github.com/roastproject/roast-env/util/cli"
)

const watchDebounce = 250 * time.Millisecond

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	if opts.PrintHelp {
		printHelp()
		cli.PrintDefaults()
		os.Exit(constants.ExitOK)
	}
	if opts.Watch {
		os.Exit(watch(opts, os.Stdout))
	}
	os.Exit(run(opts, os.Stdout))
}

func run(opts cli.Options, out io.Writer) int {
	path, explicit := common.ResolveEnvFile(opts.EnvFile)

	problems := []schema.Problem{}
	if path != "" {
		doc, err := envfile.ParseFile(path)
		switch {
		case err == nil:
			problems = schema.Check(doc)
		case os.IsNotExist(err) && !explicit:
			// No file to lint; the environment still gets checked.
		default:
			fmt.Fprintln(out, err)
			return constants.ExitRuntimeError
		}
	}

	settings, err := common.LoadSettings(path, explicit)
	if err != nil {
		fmt.Fprintln(out, err)
		return constants.ExitRuntimeError
	}
	context := common.NewContext("roast_config_check", settings)
	context.Logger.Infof("checking %s", settings)

	for _, problem := range problems {
		fmt.Fprintln(out, problem)
	}
	report := settings.Validate()
	for _, issue := range report.Issues {
		fmt.Fprintln(out, issue)
	}

	var results []probe.Result
	if opts.Probe {
		runner := probe.NewRunner(settings)
		results = runner.Run(ctx.Background())
		for _, result := range results {
			fmt.Fprintln(out, result)
		}
	}

	failed := schema.HasErrors(problems) || report.HasErrors() || probe.Failed(results)
	warned := hasWarnings(problems, report, results)
	if opts.Strict && warned {
		failed = true
	}

	switch {
	case failed:
		fmt.Fprintln(out, "configuration has problems")
		return constants.ExitProblems
	case warned:
		fmt.Fprintln(out, "ok with warnings")
	default:
		fmt.Fprintln(out, "ok")
	}
	return constants.ExitOK
}

func hasWarnings(problems []schema.Problem, report *common.Report, results []probe.Result) bool {
	for _, problem := range problems {
		if problem.Severity == constants.SeverityWarning {
			return true
		}
	}
	if report.HasWarnings() {
		return true
	}
	for _, result := range results {
		if result.Status == constants.ProbeWarn {
			return true
		}
	}
	return false
}

func watch(opts cli.Options, out io.Writer) int {
	path, _ := common.ResolveEnvFile(opts.EnvFile)
	if path == "" {
		fmt.Fprintln(out, "no env file to watch; set -env-file or ROAST_ENV_FILE")
		return constants.ExitRuntimeError
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(out, err)
		return constants.ExitRuntimeError
	}
	defer watcher.Close()

	// Watch the directory, not the file. Editors save by writing a
	// temp file and renaming it over the original, which would kill
	// a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Fprintln(out, err)
		return constants.ExitRuntimeError
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	lastCode := run(opts, out)

	// Editors fire bursts of events per save; the timer coalesces a
	// burst into one re-check.
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	target := filepath.Clean(path)
	for {
		select {
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			fmt.Fprintf(out, "\n%s changed\n", path)
			lastCode = run(opts, out)
		case watchErr := <-watcher.Errors:
			fmt.Fprintln(out, watchErr)
		case <-signals:
			return lastCode
		}
	}
}

func printHelp() {
	message := `
roast_config_check lints the env file and validates the effective
roast configuration: process environment over env file over built-in
defaults. With -probe it also runs the live environment doctor, which
touches the export path, the database and the S3 bucket.

Exit codes: 0 when the configuration is usable, 1 when it has
problems, 2 when the check itself could not run.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
