package console

import (
	"fmt"
	"sort"
	"strings"
)

// Handler runs a command. rest is the input after the command name, trimmed.
type Handler func(c *Controller, rest string) error

// Command is one verb of the console
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Help    string
	Run     Handler
}

// Router stores and dispatches console commands
type Router struct {
	commands map[string]*Command
}

func NewRouter() *Router {
	return &Router{
		commands: make(map[string]*Command),
	}
}

// Register adds cmd under its name and aliases
func (r *Router) Register(cmd Command) error {
	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range names {
		if _, ok := r.commands[name]; ok {
			return fmt.Errorf("command %q already registered", name)
		}
	}

	c := cmd
	for _, name := range names {
		r.commands[name] = &c
	}
	return nil
}

// List returns every command once, sorted by name
func (r *Router) List() []Command {
	seen := make(map[*Command]bool)
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		out = append(out, *cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve splits line into a command and the rest of the input
func (r *Router) Resolve(line string) (*Command, string, error) {
	line = strings.TrimSpace(line)
	name, rest, _ := strings.Cut(line, " ")
	cmd, ok := r.commands[strings.ToLower(name)]
	if !ok {
		return nil, "", fmt.Errorf("unknown command %q, type help", name)
	}
	return cmd, strings.TrimSpace(rest), nil
}
