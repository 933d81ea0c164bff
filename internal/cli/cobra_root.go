package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"worklog/internal/api"
	"worklog/internal/clock"
	"worklog/internal/config"
	"worklog/internal/logging"
)

// APIFactory opens the store described by cfg and returns the API over it
// together with a function that releases the store.
type APIFactory func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory APIFactory
	clock   clock.Clock
	out     io.Writer
	options *CommandOptions

	config  *config.Config
	app     *App
	release func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory APIFactory, clk clock.Clock, out io.Writer) *RootCommand {
	root := &RootCommand{
		factory: factory,
		clock:   clk,
		out:     out,
		options: &CommandOptions{},
	}

	root.cmd = &cobra.Command{
		Use:   "worklog",
		Short: "Track time spent on tasks",
		Long: `worklog records the intervals you spend on tasks and reports on them.

A task is started, paused, resumed and stopped by ID. Running intervals are
closed automatically at the daily cutoff and old data is purged after the
retention period by the daemon.

EXAMPLES:
  worklog user add alice --name "Alice" --email alice@example.com
  worklog task add alice write quarterly report
  worklog task update 3 write Q2 report --description "due Friday"
  worklog start 3
  worklog pause 3
  worklog resume 3
  worklog stop 3
  worklog status 3
  worklog interval show 12
  worklog report alice --from 1w --sort duration
  worklog daemon

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    WL_DB_DRIVER                 sqlite or postgres (default: sqlite)
    WL_DB_DIR                    SQLite database directory (default: ~/.worklog)
    WL_DB_FILENAME               SQLite database filename (default: worklog.db)
    WL_DB_DSN                    Postgres connection string
    WL_AUTOEND_CUTOFF            Daily auto-end time, HH:MM (default: 23:59)
    WL_RETENTION_DAYS            Days of data to keep (default: 30)
    WL_RETENTION_CRON            Retention schedule (default: 0 0 3 * * *)
    WL_TIMEZONE                  Timezone for schedules and reports (default: Local)
    WL_REPORT_NATIVE_AGGREGATE   Sum report totals in the database (default: false)
    WL_APP_TIMEOUT               Per-command timeout (default: 60s)
    WL_DEBUG                     Print debug output when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd.Context(), cmd.Flags())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.teardown()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when the command fails
	if releaseErr := r.teardown(); err == nil {
		err = releaseErr
	}
	return err
}

// SetArgs overrides the arguments read from os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-driver", "", "Database driver, sqlite or postgres (overrides WL_DB_DRIVER)")
	flags.String("db-dir", "", "Database directory (overrides WL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WL_DB_FILENAME)")
	flags.String("db-dsn", "", "Postgres connection string (overrides WL_DB_DSN)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides WL_DB_QUERY_TIMEOUT)")

	// Jobs configuration
	flags.String("autoend-cutoff", "", "Daily auto-end time as HH:MM (overrides WL_AUTOEND_CUTOFF)")
	flags.Int("retention-days", 0, "Days of data to keep (overrides WL_RETENTION_DAYS)")
	flags.String("timezone", "", "Timezone for schedules and reports (overrides WL_TIMEZONE)")

	// Reporting configuration
	flags.Bool("native-aggregate", false, "Sum report totals in the database (overrides WL_REPORT_NATIVE_AGGREGATE)")
	flags.String("time-format", "", "Go time layout for report intervals (overrides WL_REPORT_TIME_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides WL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides WL_APP_VERBOSE)")
}

// overridesFromFlags collects the global flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) (*config.ConfigOverrides, error) {
	overrides := &config.ConfigOverrides{}

	stringFlags := map[string]**string{
		"db-driver":      &overrides.DBDriver,
		"db-dir":         &overrides.DBDir,
		"db-filename":    &overrides.DBFilename,
		"db-dsn":         &overrides.DBDSN,
		"autoend-cutoff": &overrides.AutoEndCutoff,
		"timezone":       &overrides.Timezone,
		"time-format":    &overrides.TimeFormat,
	}
	for name, target := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		*target = &v
	}

	durationFlags := map[string]**time.Duration{
		"db-query-timeout": &overrides.DBQueryTimeout,
		"app-timeout":      &overrides.Timeout,
	}
	for name, target := range durationFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetDuration(name)
		if err != nil {
			return nil, err
		}
		*target = &v
	}

	boolFlags := map[string]**bool{
		"native-aggregate": &overrides.NativeAggregate,
		"verbose":          &overrides.Verbose,
	}
	for name, target := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return nil, err
		}
		*target = &v
	}

	if flags.Changed("retention-days") {
		v, err := flags.GetInt("retention-days")
		if err != nil {
			return nil, err
		}
		overrides.RetentionDays = &v
	}

	return overrides, nil
}

// setup loads the configuration and opens the API once flags are parsed
func (r *RootCommand) setup(ctx context.Context, flags *pflag.FlagSet) error {
	overrides, err := overridesFromFlags(flags)
	if err != nil {
		return err
	}
	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.SetDebug(cfg.Application.Verbose)

	if ctx == nil {
		ctx = context.Background()
	}
	businessAPI, release, err := r.factory(ctx, cfg)
	if err != nil {
		return err
	}

	r.config = cfg
	r.release = release
	r.app = NewAppWithOutput(businessAPI, cfg, r.clock, r.out, r.options)
	return nil
}

func (r *RootCommand) teardown() error {
	if r.release == nil {
		return nil
	}
	release := r.release
	r.release = nil
	return release()
}

// run returns a RunE dispatching to the named registry command under the application timeout
func (r *RootCommand) run(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
		defer cancel()
		return r.app.Run(ctx, name, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// User commands
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	userAddCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("user add"),
	}
	userAddCmd.Flags().StringVar(&r.options.DisplayName, "name", "", "Display name")
	userAddCmd.Flags().StringVar(&r.options.Email, "email", "", "Email address")
	userShowCmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("user show"),
	}
	userListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE:  r.run("user list"),
	}
	userUpdateCmd := &cobra.Command{
		Use:   "update <username>",
		Short: "Change a user's display name or email",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("user update"),
	}
	userUpdateCmd.Flags().StringVar(&r.options.DisplayName, "name", "", "New display name")
	userUpdateCmd.Flags().StringVar(&r.options.Email, "email", "", "New email address")
	userResetCmd := &cobra.Command{
		Use:   "reset <username>",
		Short: "Delete all of a user's tasks and intervals but keep the user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("user reset"),
	}
	userDeleteCmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user with all of their tasks and intervals",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("user delete"),
	}
	userCmd.AddCommand(userAddCmd, userShowCmd, userListCmd, userUpdateCmd, userResetCmd, userDeleteCmd)

	// Task commands
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	taskAddCmd := &cobra.Command{
		Use:   "add <username> <task name>",
		Short: "Add a task for a user",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.run("task add"),
	}
	taskAddCmd.Flags().StringVar(&r.options.Description, "description", "", "Task description")
	taskShowCmd := &cobra.Command{
		Use:   "show <task id>",
		Short: "Show a task with its owner and total tracked time",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("task show"),
	}
	taskListCmd := &cobra.Command{
		Use:   "list <username>",
		Short: "List the tasks of a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("task list"),
	}
	taskDeleteCmd := &cobra.Command{
		Use:   "delete <task id>",
		Short: "Delete a task and its intervals",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("task delete"),
	}
	taskUpdateCmd := &cobra.Command{
		Use:   "update <task id> [new name]",
		Short: "Rename a task or change its description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r.options.DescriptionSet = cmd.Flags().Changed("description")
			return r.run("task update")(cmd, args)
		},
	}
	taskUpdateCmd.Flags().StringVar(&r.options.Description, "description", "", "New description, empty to clear it")
	taskCmd.AddCommand(taskAddCmd, taskShowCmd, taskListCmd, taskUpdateCmd, taskDeleteCmd)

	// Interval commands
	intervalCmd := &cobra.Command{
		Use:   "interval",
		Short: "Inspect or remove single intervals",
	}
	intervalCmd.AddCommand(
		&cobra.Command{
			Use:   "show <interval id>",
			Short: "Show an interval",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run("interval show"),
		},
		&cobra.Command{
			Use:   "delete <interval id>",
			Short: "Delete an interval",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run("interval delete"),
		},
	)

	// Lifecycle commands
	lifecycle := []struct {
		name  string
		short string
	}{
		{"start", "Start tracking a task"},
		{"stop", "Stop tracking a task"},
		{"pause", "Pause a running task"},
		{"resume", "Resume a paused task"},
		{"status", "Show the latest interval of a task"},
		{"elapsed", "Show the total tracked time of a task"},
	}
	for _, l := range lifecycle {
		r.cmd.AddCommand(&cobra.Command{
			Use:   l.name + " <task id>",
			Short: l.short,
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(l.name),
		})
	}

	// Reporting commands
	effortCmd := &cobra.Command{
		Use:   "effort <username>",
		Short: "Show a user's total tracked time in a range",
		Long: `Show a user's total tracked time in a range. Intervals are clipped to the range.

--from and --to accept 2006-01-02, 2006-01-02 15:04, RFC 3339 or a shorthand
such as 30m, 2h, 1d, 2w, 3mo or 1y meaning that long ago. The range defaults to today.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run("effort"),
	}
	addRangeFlags(effortCmd.Flags(), r.options)

	reportCmd := &cobra.Command{
		Use:   "report <username>",
		Short: "Show per-task totals or intervals of a user in a range",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("report"),
	}
	addRangeFlags(reportCmd.Flags(), r.options)
	reportCmd.Flags().StringVar(&r.options.Sort, "sort", "", "Sort by duration or start_time (default from WL_REPORT_DEFAULT_SORT)")
	reportCmd.Flags().StringVar(&r.options.Output, "output", "", "Print duration totals or interval lines (default duration)")

	// Job commands
	autoEndCmd := &cobra.Command{
		Use:   "autoend",
		Short: "Close every running interval now",
		Args:  cobra.NoArgs,
		RunE:  r.run("autoend"),
	}
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Purge data older than the retention period now",
		Args:  cobra.NoArgs,
		RunE:  r.run("cleanup"),
	}
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run auto-end and retention on their schedules until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.app.Run(ctx, "daemon", args)
		},
	}

	r.cmd.AddCommand(userCmd, taskCmd, intervalCmd, effortCmd, reportCmd, autoEndCmd, cleanupCmd, daemonCmd)
}

func addRangeFlags(flags *pflag.FlagSet, options *CommandOptions) {
	flags.StringVar(&options.From, "from", "", "Start of the range (default start of today)")
	flags.StringVar(&options.To, "to", "", "End of the range (default now)")
}
