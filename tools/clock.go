package tools

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iterbot/iterbot"
	"github.com/iterbot/iterbot/schema"
)

// Clock bundles the built-in time and date tools. All of them read the
// same TimeProvider, so tests can pin the clock once and every tool
// answers consistently.
type Clock struct {
	provider iterbot.TimeProvider
}

// NewClock creates a Clock backed by the system time.
func NewClock() *Clock {
	return &Clock{provider: iterbot.NewDefaultTimeProvider()}
}

// WithTimeProvider replaces the clock source.
// Use this to inject a mock time provider for testing.
func (c *Clock) WithTimeProvider(tp iterbot.TimeProvider) *Clock {
	c.provider = tp
	return c
}

// CurrentTime reports the time of day.
func (c *Clock) CurrentTime() iterbot.Tool {
	return iterbot.Tool{
		Name:        "get_current_time",
		Description: "Returns the current time of day as HH:MM:SS.",
		Fn: func(_ context.Context, _ map[string]any) (string, error) {
			return c.provider.Format("15:04:05"), nil
		},
	}
}

// CurrentDate reports today's date.
func (c *Clock) CurrentDate() iterbot.Tool {
	return iterbot.Tool{
		Name:        "get_current_date",
		Description: "Returns the current date as YYYY-MM-DD.",
		Fn: func(_ context.Context, _ map[string]any) (string, error) {
			return c.provider.Today(), nil
		},
	}
}

var datetimeSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"format": schema.String("Optional Go time layout, e.g. \"2006-01-02 15:04:05\"."),
}))

// CurrentDateTime reports date and time together. An optional "format"
// argument overrides the layout.
func (c *Clock) CurrentDateTime() iterbot.Tool {
	return iterbot.Tool{
		Name:        "get_current_datetime",
		Description: "Returns the current date and time as YYYY-MM-DD HH:MM:SS.",
		Fn: func(_ context.Context, args map[string]any) (string, error) {
			if err := datetimeSchema.Validate(args); err != nil {
				return "", err
			}
			layout := "2006-01-02 15:04:05"
			if f, ok := args["format"].(string); ok && f != "" {
				layout = f
			}
			return c.provider.Format(layout), nil
		},
	}
}

// EpochTime reports Unix time in seconds.
func (c *Clock) EpochTime() iterbot.Tool {
	return iterbot.Tool{
		Name:        "get_epoch_time",
		Description: "Returns the current Unix epoch time in seconds.",
		Fn: func(_ context.Context, _ map[string]any) (string, error) {
			return strconv.FormatInt(c.provider.Now().Unix(), 10), nil
		},
	}
}

var timezoneSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"timezone": schema.String("IANA timezone name, e.g. \"Asia/Jakarta\"."),
}, "timezone"))

// TimezoneTime reports the time of day in a named IANA timezone. Not part
// of Defaults; register it on agents that need timezone awareness.
func (c *Clock) TimezoneTime() iterbot.Tool {
	return iterbot.Tool{
		Name:        "get_timezone_aware_time",
		Description: "Returns the current time in a given IANA timezone, e.g. Asia/Jakarta.",
		Fn: func(_ context.Context, args map[string]any) (string, error) {
			if err := timezoneSchema.Validate(args); err != nil {
				return "", err
			}
			name, _ := args["timezone"].(string)
			loc, err := time.LoadLocation(name)
			if err != nil {
				return "", fmt.Errorf("unknown timezone %q: %w", name, err)
			}
			return c.provider.Now().In(loc).Format("15:04:05 MST-0700"), nil
		},
	}
}
