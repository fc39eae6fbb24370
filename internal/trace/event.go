package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeCommand is one CLI command.
	ScopeCommand Scope = iota + 1
	// ScopePhase is a phase of a command: load, parse, render, verify.
	ScopePhase
	// ScopeSet is the work for a single set.
	ScopeSet
	// ScopeCache is a single cache lookup or store.
	ScopeCache
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopePhase:
		return "phase"
	case ScopeSet:
		return "set"
	case ScopeCache:
		return "cache"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Name     string // e.g. "batch", "render", "set:latin-lower"
	Detail   string
	Elapsed  time.Duration // set on span end
	Extra    map[string]string
}
