// Package flagx contains helpers for components that parse their own subset
// of command-line flags without tripping over flags owned by other components.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the arguments belonging to the given flag names
// (plus their values). Both "-f value" and "-f=value" forms are kept.
func FilterArgs(args []string, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}

	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := arg
		if idx := strings.Index(arg, "="); idx >= 0 {
			name = arg[:idx]
		}
		if _, ok := allowedSet[name]; !ok {
			continue
		}
		result = append(result, arg)
		// keep the value of a space-separated flag
		if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			result = append(result, args[i+1])
			i++
		}
	}
	return result
}

// JsonConfigFlags resolves the JSON config file path from -c/-config flags.
// Returns an empty string when neither flag is present.
func JsonConfigFlags() string {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("jsonconfig", flag.ContinueOnError)
	short := fs.String("c", "", "path to json config file")
	long := fs.String("config", "", "path to json config file")
	if err := fs.Parse(args); err != nil {
		return ""
	}
	if *long != "" {
		return *long
	}
	return *short
}
