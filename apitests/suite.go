package apitests

import (
	"golang.org/x/time/rate"

	"github.com/dummyjson-contrib/api-contract-tests/framework"
)

// RunTestSuite runs every scenario group against the configured target and
// returns the accumulated results.
func RunTestSuite(opts SuiteOpts, filter framework.Filter, testLogger framework.TestLogger) framework.Results {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	// Scenarios each build their own clients; the rate cap only means
	// anything if they all draw from one limiter.
	if opts.ClientConfig.Limiter == nil && opts.ClientConfig.RequestsPerSecond > 0 {
		opts.ClientConfig.Limiter = rate.NewLimiter(rate.Limit(opts.ClientConfig.RequestsPerSecond), 1)
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &opts)
		defer t.close()

		t.RunParallel([]Scenario{
			{"auth", DoAuthTests},
			{"products", DoProductTests},
			{"carts", DoCartTests},
			{"users", DoUserTests},
		})
	})
}
