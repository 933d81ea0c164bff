package cli

import (
	"context"
	"sort"

	"worklog/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("user add", NewUserAddCommand(app))
	registry.Register("user show", NewUserShowCommand(app))
	registry.Register("user list", NewUserListCommand(app))
	registry.Register("user update", NewUserUpdateCommand(app))
	registry.Register("user reset", NewUserResetCommand(app))
	registry.Register("user delete", NewUserDeleteCommand(app))
	registry.Register("task add", NewTaskAddCommand(app))
	registry.Register("task show", NewTaskShowCommand(app))
	registry.Register("task list", NewTaskListCommand(app))
	registry.Register("task update", NewTaskUpdateCommand(app))
	registry.Register("task delete", NewTaskDeleteCommand(app))
	registry.Register("interval show", NewIntervalShowCommand(app))
	registry.Register("interval delete", NewIntervalDeleteCommand(app))
	registry.Register("start", NewStartCommand(app))
	registry.Register("stop", NewStopCommand(app))
	registry.Register("pause", NewPauseCommand(app))
	registry.Register("resume", NewResumeCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("elapsed", NewElapsedCommand(app))
	registry.Register("effort", NewEffortCommand(app))
	registry.Register("report", NewReportCommand(app))
	registry.Register("autoend", NewAutoEndCommand(app))
	registry.Register("cleanup", NewCleanupCommand(app))
	registry.Register("daemon", NewDaemonCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the command registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in sorted order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
