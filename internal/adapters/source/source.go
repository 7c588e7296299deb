// Package source declares the tagged record shapes the engine consumes and
// CSV-backed adapters that read them.
//
// Each source declares its schema explicitly and emits already-tagged
// records; nothing downstream guesses a source by column count.
package source

// Kind tags the origin of a record.
type Kind int

// Source kinds in resolution precedence order: the directory is the
// authoritative id source, then the event log, then the service log.
const (
	KindDirectory Kind = iota
	KindEventLog
	KindServiceLog
	KindStats
)

// String returns the label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindEventLog:
		return "event_log"
	case KindServiceLog:
		return "service_log"
	case KindStats:
		return "stats"
	default:
		return "unknown"
	}
}

// DirectoryRecord is one row of the master directory.
type DirectoryRecord struct {
	RawID     string
	FullName  string
	Email     string
	FirstName string
	LastName  string
}

// ServiceRecord is one row of the recurring-service log.
type ServiceRecord struct {
	RawID     string
	FullName  string
	FirstName string
	LastName  string
	Timestamp string
	Status    string
	Email     string
	Notes     string
}

// EventRecord is one row of the ad-hoc event log.
type EventRecord struct {
	RawID           string
	FullName        string
	EventName       string
	EventID         string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	FormSheetOrigin string
	Role            string
	Timestamp       string
}

// StatsRecord is one row of the downstream stats table, read back only for
// roster filtering. Fields live at fixed positional offsets; see csv.go.
type StatsRecord struct {
	RawID            string
	FullName         string
	FirstName        string
	LastName         string
	QuarterCount     string
	MonthCount       string
	VolunteerCount   string
	LastAttendedDate string
	LastEventName    string
	TotalUnique      string
	ActivityLevel    string
}

// Tables bundles one run's full snapshot of every input table.
type Tables struct {
	Directory []DirectoryRecord
	Events    []EventRecord
	Services  []ServiceRecord
}
