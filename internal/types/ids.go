package types

// ID types give semantic meaning to the string identifiers that flow through
// the store, the relation rules and the remote boundary.

// ProjectID identifies a project ("P1", "P2", ...)
type ProjectID string

// TaskID identifies a task ("T1", ...). Task IDs are unique across projects.
type TaskID string

// SprintID identifies a sprint within its project ("S1", ...)
type SprintID string

// ColumnID identifies a kanban column ("P1_todo", "P1_C1", ...)
type ColumnID string

// RiskID identifies a risk ("R1", ...)
type RiskID string

// MinutesID identifies a set of meeting minutes ("M1", ...)
type MinutesID string

// ID prefixes used by the identifier generator
const (
	ProjectPrefix = "P"
	TaskPrefix    = "T"
	SprintPrefix  = "S"
	RiskPrefix    = "R"
	MinutesPrefix = "M"
	ColumnPrefix  = "C"
)

// GlobalScope is the sequence scope for prefixes that are not project scoped.
const GlobalScope = ""

func (id ProjectID) String() string { return string(id) }
func (id TaskID) String() string    { return string(id) }
func (id SprintID) String() string  { return string(id) }
func (id ColumnID) String() string  { return string(id) }
func (id RiskID) String() string    { return string(id) }
func (id MinutesID) String() string { return string(id) }

// Strings converts a slice of typed IDs into plain strings, e.g. for the
// identifier generator's scan.
func Strings[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
