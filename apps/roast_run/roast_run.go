package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/models/common"
	"github.com/roastproject/roast-env/util"
	"github.com/roastproject/roast-env/util/cli"
)

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	command := cli.Args()
	if opts.PrintHelp || len(command) == 0 {
		printHelp()
		cli.PrintDefaults()
		if opts.PrintHelp {
			os.Exit(constants.ExitOK)
		}
		os.Exit(constants.ExitRuntimeError)
	}
	os.Exit(run(opts, command, os.Stderr))
}

func run(opts cli.Options, command []string, errOut io.Writer) int {
	path, explicit := common.ResolveEnvFile(opts.EnvFile)
	var doc *envfile.Document
	if path != "" {
		parsed, err := envfile.ParseFile(path)
		switch {
		case err == nil:
			doc = parsed
		case os.IsNotExist(err) && !explicit:
			path = ""
		default:
			fmt.Fprintln(errOut, err)
			return constants.ExitRuntimeError
		}
	}
	environ := buildEnv(os.Environ(), doc, path, opts.Overload, uuid.New().String())

	if opts.PidFile != "" {
		if err := util.AcquirePidFile(opts.PidFile); err != nil {
			fmt.Fprintln(errOut, err)
			return constants.ExitProblems
		}
		defer util.DeletePidFile(opts.PidFile)
	}

	child := exec.Command(command[0], command[1:]...)
	child.Env = environ
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Start(); err != nil {
		fmt.Fprintf(errOut, "roast_run: %v\n", err)
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return constants.ExitCommandNotFound
		}
		return constants.ExitRuntimeError
	}

	// Forward interrupts to the child. roast_run itself only exits
	// once the child does, with the child's code.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				child.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := child.Wait()
	close(done)
	signal.Stop(signals)
	return exitCodeFor(err)
}

// buildEnv layers the env file under the process environment (or
// over it with overload) and injects the per-run variables. Stale
// ROAST_RUN_ID and ROAST_ENV_FILE entries from an outer roast_run
// are dropped so the child always sees this run's values.
func buildEnv(environ []string, doc *envfile.Document, path string, overload bool, runID string) []string {
	merged := environ
	if doc != nil {
		merged = doc.Apply(environ, overload)
	}
	env := make([]string, 0, len(merged)+2)
	for _, entry := range merged {
		if strings.HasPrefix(entry, constants.EnvRunID+"=") ||
			strings.HasPrefix(entry, constants.EnvEnvFile+"=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, constants.EnvRunID+"="+runID)
	if path != "" {
		env = append(env, constants.EnvEnvFile+"="+path)
	}
	return env
}

func exitCodeFor(err error) int {
	if err == nil {
		return constants.ExitOK
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		// Killed by a signal; report it the way shells do.
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
	}
	return constants.ExitRuntimeError
}

func printHelp() {
	message := `
roast_run runs a command with the roast environment applied:

    roast_run [flags] -- command [args...]

The env file fills in variables the process environment leaves unset;
with -overload the file wins instead. Every child also gets a fresh
ROAST_RUN_ID and, when a file was loaded, ROAST_ENV_FILE. The exit
code is the child's, or 127 when the command cannot be started.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
