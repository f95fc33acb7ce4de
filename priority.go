// FILE: lixenwraith/options/priority.go
package options

// Priority ranks the source of an option write. The order below is a fixed
// integration contract with surrounding tooling: higher tiers win over lower
// ones, and ties within a tier are broken by arrival order.
type Priority int

const (
	// PriorityDefault represents hard-coded default values.
	PriorityDefault Priority = iota
	// PriorityComputedDefault represents defaults derived at startup
	// (e.g. from the host platform).
	PriorityComputedDefault
	// PriorityRcFile represents values read from an rc file.
	PriorityRcFile
	// PriorityEnv represents values derived from environment variables.
	PriorityEnv
	// PriorityCommandLine represents values from the command line.
	PriorityCommandLine
	// PriorityInvocationPolicy represents values forced by an external
	// invocation policy; nothing outranks it.
	PriorityInvocationPolicy
)

func (p Priority) String() string {
	switch p {
	case PriorityDefault:
		return "default"
	case PriorityComputedDefault:
		return "computed-default"
	case PriorityRcFile:
		return "rc-file"
	case PriorityEnv:
		return "env"
	case PriorityCommandLine:
		return "command-line"
	case PriorityInvocationPolicy:
		return "invocation-policy"
	default:
		return "unknown"
	}
}

// Priorities returns all tiers in ascending precedence order.
func Priorities() []Priority {
	return []Priority{
		PriorityDefault,
		PriorityComputedDefault,
		PriorityRcFile,
		PriorityEnv,
		PriorityCommandLine,
		PriorityInvocationPolicy,
	}
}
