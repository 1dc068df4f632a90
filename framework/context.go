// Package framework is the generic scenario runner: a test-context tree in
// the role of Go's testing.T, but outside the Go test runner, with regex
// run/skip filters, per-test captured debug output, and pluggable reporting.
package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	mu         sync.Mutex

	semOnce sync.Once
	sem     chan struct{}
}

// semaphore returns the run-wide worker pool, created on first use. Every
// RunParallel call in the same run draws from this one pool, so the worker
// bound holds across nested levels rather than multiplying per level.
func (e *environment) semaphore(workers int) chan struct{} {
	e.semOnce.Do(func() { e.sem = make(chan struct{}, workers) })
	return e.sem
}

func (e *environment) record(result TestResult, failed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results.Tests = append(e.results.Tests, result)
	if failed {
		e.results.Failures = append(e.results.Failures, result)
	}
}

func (e *environment) logStarted(id TestID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.testLogger.TestStarted(id)
}

func (e *environment) logError(id TestID, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.testLogger.TestError(id, err)
}

func (e *environment) logFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.testLogger.TestFinished(id, failed, debugOutput)
}

func (e *environment) logSkipped(id TestID, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.testLogger.TestSkipped(id, reason)
}

// Context represents a running test or subtest. It satisfies the TestingT
// interface of the assert and require packages through Errorf and FailNow,
// so standard assertions can target it directly.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	holdsSlot   bool
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a tree of tests rooted at action and returns the accumulated
// results. The filter decides which subtests run; a nil filter runs all of
// them.
func Run(filter Filter, testLogger TestLogger, action func(*Context)) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				// FailNow was called; the failure is already recorded unless
				// the test somehow failed without a message.
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.logError(c.id, addError)
			}
		}
		// The root context is the suite itself, not a test; it only shows
		// up in the results if it failed directly.
		if len(c.id.Path) == 0 && !c.failed {
			return
		}
		c.env.record(TestResult{TestID: c.id, Errors: c.errors}, c.failed)
	}()

	action(c)
}

// ID returns the full path of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest under the current test's path.
func (c *Context) Run(name string, action func(*Context)) {
	c.runChild(name, action, c.holdsSlot)
}

func (c *Context) runChild(name string, action func(*Context), holdsSlot bool) {
	path := make([]string, 0, len(c.id.Path)+1)
	path = append(path, c.id.Path...)
	id := TestID{Path: append(path, name)}

	c.env.logStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.logSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:        id,
		env:       c.env,
		holdsSlot: holdsSlot,
	}
	c1.run(action)
	if c1.skipped {
		c.env.logSkipped(id, c1.skipReason)
	} else {
		c.env.logFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// NamedTest pairs a subtest name with its action, for RunParallel.
type NamedTest struct {
	Name   string
	Action func(*Context)
}

// RunParallel runs a set of independent subtests across at most workers
// goroutines. The subtests must not share mutable state with each other.
// With workers <= 1 they run sequentially in order. The worker bound is
// shared by every RunParallel call in the run, so nesting groups of
// parallel subtests never exceeds it.
func (c *Context) RunParallel(workers int, tests []NamedTest) {
	if workers <= 1 {
		for _, test := range tests {
			c.Run(test.Name, test.Action)
		}
		return
	}

	sem := c.env.semaphore(workers)

	// A subtest that fans out again is only waiting from here on; hand its
	// slot back so the children cannot starve the pool.
	if c.holdsSlot {
		<-sem
		defer func() { sem <- struct{}{} }()
	}

	var wg sync.WaitGroup
	for _, test := range tests {
		wg.Add(1)
		go func(test NamedTest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			c.runChild(test.Name, test.Action, true)
		}(test)
	}
	wg.Wait()
}

// Errorf records a test failure without stopping the test. It is part of
// the interface expected by the assert package.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.logError(c.id, err)
}

// FailNow stops the test immediately. It is part of the interface expected
// by the require package.
func (c *Context) FailNow() {
	panic(c)
}

// Skip marks the test as skipped and stops it immediately.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is Skip with an explanation for the test report.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug records debug output for this test; it is delivered to the test
// logger when the test finishes.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
