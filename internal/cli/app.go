package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"time"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/errors"
)

var shorthandPattern = regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)

const day = 24 * time.Hour

var shorthandUnits = map[string]time.Duration{
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  day,
	"w":  7 * day,
	"mo": 30 * day,
	"y":  365 * day,
}

// errShorthandRange marks a shorthand whose duration does not fit in a time.Duration
var errShorthandRange = stderrors.New("shorthand out of range")

// timeLayouts are tried in order when parsing --from and --to
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// CommandOptions holds the per-command flag values. Commands read them when they execute.
type CommandOptions struct {
	// user add
	DisplayName string
	Email       string

	// task add and task update
	Description string
	// DescriptionSet reports whether --description was given to task update
	DescriptionSet bool

	// effort and report
	From   string
	To     string
	Sort   string
	Output string
}

// App holds what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	clock       clock.Clock
	out         io.Writer
	options     *CommandOptions
	registry    *CommandRegistry
}

// NewAppWithOutput creates a new CLI application writing to out
func NewAppWithOutput(businessAPI api.BusinessAPI, cfg *config.Config, clk clock.Clock, out io.Writer, options *CommandOptions) *App {
	if options == nil {
		options = &CommandOptions{}
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		clock:       clk,
		out:         out,
		options:     options,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the named command through the registry
func (a *App) Run(ctx context.Context, name string, args []string) error {
	return a.registry.Execute(ctx, name, args)
}

// location returns the configured timezone, falling back to local time
func (a *App) location() *time.Location {
	if a.config == nil {
		return time.Local
	}
	loc, err := a.config.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// resolveRange turns the --from and --to flag values into a time range.
// An empty from means the start of today and an empty to means now.
func (a *App) resolveRange(from, to string) (domain.TimeRange, error) {
	now := a.clock.Now().In(a.location())

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if from != "" {
		t, err := a.parseTimeArg("from", from, now)
		if err != nil {
			return domain.TimeRange{}, err
		}
		start = t
	}

	end := now
	if to != "" {
		t, err := a.parseTimeArg("to", to, now)
		if err != nil {
			return domain.TimeRange{}, err
		}
		end = t
	}

	return domain.TimeRange{Start: start, End: end}, nil
}

// parseTimeArg accepts an absolute time or a shorthand such as "2h" meaning that long before now
func (a *App) parseTimeArg(field, value string, now time.Time) (time.Time, error) {
	d, err := parseTimeShorthand(value)
	if err == nil {
		return now.Add(-d), nil
	}
	if stderrors.Is(err, errShorthandRange) {
		return time.Time{}, errors.NewInvalidInputError(field, value, "shorthand reaches too far back")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError(field, value, "expected a time like 2024-05-20 08:00 or a shorthand like 2h")
}

// parseTaskID parses a task ID argument
func parseTaskID(arg string) (int64, error) {
	return parseID("task ID", arg)
}

// parseID parses a positive integer ID argument
func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, arg, "must be a positive integer")
	}
	return id, nil
}

// parseTimeShorthand parses time shorthand like "30m", "2h", "1d", etc.
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	matches := shorthandPattern.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, fmt.Errorf("invalid time format: %s", shorthand)
	}

	unit := shorthandUnits[matches[2]]
	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || value > int64(math.MaxInt64/unit) {
		return 0, fmt.Errorf("%w: %s", errShorthandRange, shorthand)
	}
	return time.Duration(value) * unit, nil
}
