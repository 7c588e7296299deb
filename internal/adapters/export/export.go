// Package export serializes attendance summaries in the engine's fixed
// 10-column wire order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/okian/rollcall/internal/domain/model"
)

// dateLayout is the wire format for dates (MM/dd/yyyy).
const dateLayout = "01/02/2006"

// header is the fixed 10-column wire order.
var header = []string{ //nolint:gochecknoglobals // static wire schema
	"id",
	"full name",
	"first name",
	"last name",
	"quarter count",
	"month count",
	"volunteer count",
	"last attended",
	"last event",
	"total unique events",
}

// WriteSummaries writes summaries to w in the fixed column order, dates
// rendered in loc.
func WriteSummaries(w io.Writer, summaries []model.AttendanceSummary, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range summaries {
		rec := []string{
			strconv.Itoa(s.IdentityID),
			s.DisplayName,
			s.FirstName,
			s.LastName,
			strconv.Itoa(s.QuarterEventCount),
			strconv.Itoa(s.MonthEventCount),
			strconv.Itoa(s.VolunteerCount),
			s.LastAttendedDate.In(loc).Format(dateLayout),
			s.LastEventName,
			strconv.Itoa(s.TotalUniqueEvents),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush summaries: %w", err)
	}
	return nil
}

// WriteSummariesFile writes summaries to a file at path, replacing any
// previous contents.
func WriteSummariesFile(path string, summaries []model.AttendanceSummary, loc *time.Location) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := WriteSummaries(f, summaries, loc); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}
