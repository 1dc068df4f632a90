package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/dummyjson-contrib/api-contract-tests/framework"
)

type commandParams struct {
	baseURL    string
	configPath string
	workers    int
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the API under test (default: $API_BASE_URL or the public instance)")
	fs.StringVar(&c.configPath, "config", "", "path to a YAML configuration file")
	fs.IntVar(&c.workers, "workers", 0, "number of scenarios to run concurrently (default: from configuration)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand builds a shell command that reruns exactly the failed tests,
// preserving the target selection from this run.
func (c commandParams) rerunCommand(failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0])
	if c.baseURL != "" {
		b.add("-url", c.baseURL)
	}
	if c.configPath != "" {
		b.add("-config", c.configPath)
	}
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
