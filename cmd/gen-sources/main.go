// Command gen-sources writes a synthetic snapshot of the three input tables
// (directory, ad-hoc event log, recurring service log) for local runs and
// load experiments.
package main

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rollcall/pkg/logger"
)

// Default generation sizes.
const (
	defaultPeople = 200
	defaultEvents = 12
	defaultWeeks  = 26

	randomFloatDivisor = 1000000

	// Share of people present in the master directory; the rest arrive
	// only through the logs and exercise id allocation.
	directoryShare = 0.7

	// Share of log rows carrying a legacy alphanumeric id.
	legacyIDShare = 0.1

	// Attendance probability per person per instance.
	eventTurnout   = 0.25
	serviceTurnout = 0.35
	volunteerShare = 0.15

	firstDirectoryID = 1001
)

var firstNames = []string{
	"Avery", "Morgan", "Jesse", "Riley", "Quinn", "Jordan", "Casey",
	"Rowan", "Skyler", "Emerson", "Harper", "Dakota", "Reese", "Finley",
	"Sawyer", "Peyton", "Elliot", "Marlow", "Tatum", "Blair",
}

var lastNames = []string{
	"Reed", "Lane", "Park", "Hayes", "Brooks", "Sutton", "Mercer",
	"Ellison", "Whitaker", "Donnelly", "Vance", "Calloway", "Pryor",
	"Hollis", "Ashford", "Keating", "Monroe", "Thorne", "Langley", "Bex",
}

var eventNames = []string{
	"Summer Picnic", "Spring Gala", "Autumn Fair", "Winter Banquet",
	"Community Cleanup", "Food Drive", "Newcomers Breakfast",
	"Youth Retreat", "Charity Auction", "Harvest Festival",
	"Game Night", "Volunteer Training",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

type person struct {
	rawID     string
	firstName string
	lastName  string
	email     string
	phone     string
}

func (p person) fullName() string {
	return p.firstName + " " + p.lastName
}

func main() {
	var (
		outDir = flag.String("out", "testdata", "Output directory for the generated tables")
		people = flag.Int("people", defaultPeople, "Number of distinct people")
		events = flag.Int("events", defaultEvents, "Number of distinct ad-hoc events")
		weeks  = flag.Int("weeks", defaultWeeks, "Number of recurring service weeks")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()
	log := logger.Get().Named("gen-sources")

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Error(ctx, "cannot create output directory", logger.Error(err))
		return
	}

	roster := generatePeople(*people)

	if err := writeDirectory(filepath.Join(*outDir, "directory.csv"), roster); err != nil {
		log.Error(ctx, "directory table failed", logger.Error(err))
		return
	}
	eventRows, err := writeEventLog(filepath.Join(*outDir, "events.csv"), roster, *events)
	if err != nil {
		log.Error(ctx, "event log failed", logger.Error(err))
		return
	}
	serviceRows, err := writeServiceLog(filepath.Join(*outDir, "services.csv"), roster, *weeks)
	if err != nil {
		log.Error(ctx, "service log failed", logger.Error(err))
		return
	}

	log.Info(ctx, "snapshot generated",
		logger.String("dir", *outDir),
		logger.Int("people", len(roster)),
		logger.Int("event_rows", eventRows),
		logger.Int("service_rows", serviceRows))
}

// generatePeople builds the population. Directory members carry a numeric
// id; everyone else has either a legacy code or no id at all.
func generatePeople(n int) []person {
	seen := make(map[string]struct{}, n)
	roster := make([]person, 0, n)
	nextID := firstDirectoryID

	for len(roster) < n {
		p := person{
			firstName: firstNames[randomInt(len(firstNames))],
			lastName:  lastNames[randomInt(len(lastNames))],
		}
		if _, dup := seen[p.fullName()]; dup {
			// Disambiguate collisions with a middle initial.
			p.firstName = p.firstName + " " + string(rune('A'+randomInt(26)))
			if _, dup := seen[p.fullName()]; dup {
				continue
			}
		}
		seen[p.fullName()] = struct{}{}

		p.email = fmt.Sprintf("%s.%s@example.com", p.firstName, p.lastName)
		p.phone = fmt.Sprintf("555-%04d", randomInt(10000))

		switch {
		case getRandomFloat() < directoryShare:
			p.rawID = strconv.Itoa(nextID)
			nextID++
		case getRandomFloat() < legacyIDShare:
			p.rawID = fmt.Sprintf("BEL%03d", randomInt(1000))
		}

		roster = append(roster, p)
	}
	return roster
}

func writeDirectory(path string, roster []person) error {
	return writeCSV(path, []string{"id", "full name", "email", "first name", "last name"}, func(w *csv.Writer) error {
		for _, p := range roster {
			// Only people with a numeric id are directory members.
			if _, err := strconv.Atoi(p.rawID); err != nil {
				continue
			}
			if err := w.Write([]string{p.rawID, p.fullName(), p.email, p.firstName, p.lastName}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeEventLog(path string, roster []person, events int) (int, error) {
	rows := 0
	header := []string{
		"id", "full name", "event name", "event id", "first name", "last name",
		"email", "phone", "form sheet origin", "role", "timestamp",
	}
	err := writeCSV(path, header, func(w *csv.Writer) error {
		now := time.Now()
		for i := 0; i < events; i++ {
			name := eventNames[i%len(eventNames)]
			eventID := uuid.New().String()
			when := now.AddDate(0, 0, -randomInt(365)).Add(-time.Duration(randomInt(12)) * time.Hour)

			for _, p := range roster {
				if getRandomFloat() > eventTurnout {
					continue
				}
				role := "Guest"
				if getRandomFloat() < volunteerShare {
					role = "Volunteer"
				}
				row := []string{
					p.rawID, p.fullName(), name, eventID, p.firstName, p.lastName,
					p.email, p.phone, "web", role, when.Format("2006-01-02 15:04:05"),
				}
				if err := w.Write(row); err != nil {
					return err
				}
				rows++
			}
		}
		return nil
	})
	return rows, err
}

func writeServiceLog(path string, roster []person, weeks int) (int, error) {
	rows := 0
	header := []string{"id", "full name", "first name", "last name", "timestamp", "status", "email", "notes"}
	err := writeCSV(path, header, func(w *csv.Writer) error {
		sunday := lastSunday(time.Now())
		for i := 0; i < weeks; i++ {
			when := sunday.AddDate(0, 0, -7*i)
			for _, p := range roster {
				if getRandomFloat() > serviceTurnout {
					continue
				}
				row := []string{
					p.rawID, p.fullName(), p.firstName, p.lastName,
					when.Format("2006-01-02 15:04:05"), "attended", p.email, "",
				}
				if err := w.Write(row); err != nil {
					return err
				}
				rows++
			}
		}
		return nil
	})
	return rows, err
}

func lastSunday(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func writeCSV(path string, header []string, body func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
