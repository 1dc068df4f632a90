package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dummyjson-contrib/api-contract-tests/apitests"
	"github.com/dummyjson-contrib/api-contract-tests/client"
	"github.com/dummyjson-contrib/api-contract-tests/config"
	"github.com/dummyjson-contrib/api-contract-tests/framework"
)

const startupTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	if params.baseURL != "" {
		cfg.BaseURL = params.baseURL
	}
	if params.workers > 0 {
		cfg.Workers = params.workers
	}

	clientConfig := client.Config{
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	if err := client.WaitForService(clientConfig, startupTimeout, mainDebugLogger); err != nil {
		fmt.Fprintf(os.Stderr, "API error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := apitests.RunTestSuite(apitests.SuiteOpts{
		ClientConfig: clientConfig,
		Credentials: apitests.Credentials{
			Username: cfg.Credentials.Username,
			Password: cfg.Credentials.Password,
		},
		Workers: cfg.Workers,
	}, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Println("  " + params.rerunCommand(results.Failures))
		os.Exit(1)
	}
}
