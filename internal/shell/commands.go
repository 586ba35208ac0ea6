package shell

import (
	"vfsh/internal/namespace"
)

// command describes one shell builtin. run receives the words after the
// command name; required commands are never called without one.
type command struct {
	usage    string
	required bool
	run      func(ns *namespace.Namespace, arg string) (output string, err error)
}

func builtins() map[string]command {
	return map[string]command{
		"ls": {
			usage: "ls [path]",
			run: func(ns *namespace.Namespace, arg string) (string, error) {
				listing, err := ns.List(arg)
				if err != nil {
					return "", err
				}
				return listing.String() + "\n", nil
			},
		},
		"cd": {
			usage:    "cd <path>",
			required: true,
			run: func(ns *namespace.Namespace, arg string) (string, error) {
				return "", ns.ChangeDirectory(arg)
			},
		},
		"mkdir": {
			usage:    "mkdir <dir>",
			required: true,
			run: func(ns *namespace.Namespace, arg string) (string, error) {
				return "", ns.MakeDirectory(arg)
			},
		},
		"touch": {
			usage:    "touch <file>",
			required: true,
			run: func(ns *namespace.Namespace, arg string) (string, error) {
				return "", ns.CreateOrTruncateFile(arg)
			},
		},
		"cat": {
			usage:    "cat <file>",
			required: true,
			run: func(ns *namespace.Namespace, arg string) (string, error) {
				content, err := ns.ReadFile(arg)
				if err != nil {
					return "", err
				}
				return content.String() + "\n", nil
			},
		},
	}
}

// Commands returns the names accepted by the dispatcher, in display order.
func Commands() []string {
	return []string{"ls", "cd", "mkdir", "touch", "cat", "exit"}
}
