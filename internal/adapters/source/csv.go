package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/okian/rollcall/pkg/metrics"
)

// Column counts each shape requires before a row is usable.
const (
	directoryMinColumns = 2
	serviceMinColumns   = 5
	eventMinColumns     = 11
	statsMinColumns     = 11
)

// Stats table positional offsets. The table is the engine's 10-column export
// plus a trailing activity level written by the classifier wiring.
const (
	statColID = iota
	statColFullName
	statColFirstName
	statColLastName
	statColQuarter
	statColMonth
	statColVolunteer
	statColLastAttended
	statColLastEvent
	statColTotal
	statColActivity
)

// LoadTables reads the full snapshot of all three required input tables. Any
// missing file is ErrMissingSource and aborts the run.
func LoadTables(ctx context.Context, directoryPath, eventPath, servicePath string) (*Tables, error) {
	t := &Tables{}

	if err := loadCSV(directoryPath, KindDirectory, func(rec []string) {
		t.Directory = append(t.Directory, DirectoryRecord{
			RawID:     field(rec, 0),
			FullName:  field(rec, 1),
			Email:     field(rec, 2),
			FirstName: field(rec, 3),
			LastName:  field(rec, 4),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(eventPath, KindEventLog, func(rec []string) {
		t.Events = append(t.Events, EventRecord{
			RawID:           field(rec, 0),
			FullName:        field(rec, 1),
			EventName:       field(rec, 2),
			EventID:         field(rec, 3),
			FirstName:       field(rec, 4),
			LastName:        field(rec, 5),
			Email:           field(rec, 6),
			Phone:           field(rec, 7),
			FormSheetOrigin: field(rec, 8),
			Role:            field(rec, 9),
			Timestamp:       field(rec, 10),
		})
	}); err != nil {
		return nil, err
	}

	if err := loadCSV(servicePath, KindServiceLog, func(rec []string) {
		t.Services = append(t.Services, ServiceRecord{
			RawID:     field(rec, 0),
			FullName:  field(rec, 1),
			FirstName: field(rec, 2),
			LastName:  field(rec, 3),
			Timestamp: field(rec, 4),
			Status:    field(rec, 5),
			Email:     field(rec, 6),
			Notes:     field(rec, 7),
		})
	}); err != nil {
		return nil, err
	}

	return t, nil
}

// LoadStats reads the downstream stats table used for roster filtering.
func LoadStats(ctx context.Context, path string) ([]StatsRecord, error) {
	var stats []StatsRecord
	if err := loadCSV(path, KindStats, func(rec []string) {
		stats = append(stats, StatsRecord{
			RawID:            field(rec, statColID),
			FullName:         field(rec, statColFullName),
			FirstName:        field(rec, statColFirstName),
			LastName:         field(rec, statColLastName),
			QuarterCount:     field(rec, statColQuarter),
			MonthCount:       field(rec, statColMonth),
			VolunteerCount:   field(rec, statColVolunteer),
			LastAttendedDate: field(rec, statColLastAttended),
			LastEventName:    field(rec, statColLastEvent),
			TotalUnique:      field(rec, statColTotal),
			ActivityLevel:    field(rec, statColActivity),
		})
	}); err != nil {
		return nil, err
	}
	return stats, nil
}

// loadCSV opens path and feeds every data row with enough columns to emit.
// The first row is always a header and is skipped.
func loadCSV(path string, kind Kind, emit func([]string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s table %q", ErrMissingSource, kind, path)
		}
		return fmt.Errorf("open %s table: %w", kind, err)
	}
	defer f.Close()

	return readCSV(f, kind, emit)
}

// readCSV parses tabular data from r. Short rows are skipped and counted,
// never fatal.
func readCSV(r io.Reader, kind Kind, emit func([]string)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header := true
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			metrics.RecordRowSkipped(kind.String(), "malformed_csv")
			continue
		}
		if header {
			header = false
			continue
		}
		metrics.RecordRowRead(kind.String())
		if len(rec) < minColumns(kind) {
			metrics.RecordRowSkipped(kind.String(), "short_row")
			continue
		}
		emit(rec)
	}
}

func minColumns(kind Kind) int {
	switch kind {
	case KindDirectory:
		return directoryMinColumns
	case KindEventLog:
		return eventMinColumns
	case KindServiceLog:
		return serviceMinColumns
	case KindStats:
		return statsMinColumns
	default:
		return 1
	}
}

// field returns the i-th column or "" when the row is short.
func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
