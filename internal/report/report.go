// Package report wraps error reporting. CycleLedger is a local-first
// tool, so reporting is strictly opt-in: without a DSN every function
// here is a no-op and nothing ever leaves the device.
package report

import (
	"os"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Setup initializes Sentry when a DSN is configured and tags the scope
// with runtime and host details. An empty DSN disables reporting
// entirely.
func Setup(dsn, env, version string) error {
	if dsn == "" {
		enabled = false
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     version,
	}); err != nil {
		return err
	}
	enabled = true

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("env", env)
		scope.SetTag("app_version", version)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("goarch", runtime.GOARCH)
		scope.SetContext("host_info", map[string]interface{}{
			"hostname": getHostname(),
		})
	})
	return nil
}

// Enabled reports whether a DSN was configured.
func Enabled() bool {
	return enabled
}

// Flush drains pending events before shutdown.
func Flush() {
	if enabled {
		sentry.Flush(2 * time.Second)
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// ReportError reports the error with the given severity level.
// If no level is provided, it defaults to sentry.LevelError.
func ReportError(err error, levels ...sentry.Level) {
	if err == nil || !enabled {
		return
	}

	level := sentry.LevelError
	if len(levels) > 0 {
		level = levels[0]
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		sentry.CaptureException(err)
	})
}

// Options provides optional data for reporting.
type Options struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
}

// ReportErrorWithOptions reports the error with additional tags, context
// and level.
func ReportErrorWithOptions(err error, opts Options) {
	if err == nil || !enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if opts.ExtraContext != nil {
			scope.SetContext("extra", opts.ExtraContext)
		}
		for k, v := range opts.Tags {
			scope.SetTag(k, v)
		}
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}
		sentry.CaptureException(err)
	})
}
