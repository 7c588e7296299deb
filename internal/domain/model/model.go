// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Recurring-service constants. The service log carries no event name of its
// own; every row is an occurrence of the weekly service.
const (
	RecurringServiceName = "Sunday Service"
	RecurringServiceID   = "Service"
)

// InstanceKeySeparator joins the event name and the occurrence qualifier
// inside an instance key.
const InstanceKeySeparator = "|"

// serviceDateLayout keys recurring-service occurrences by calendar day.
const serviceDateLayout = "2006-01-02"

// Identity represents a person keyed by a permanently assigned numeric id.
// The match key is the normalized full name used to join sources; two people
// sharing a normalized name collapse into one identity by design.
type Identity struct {
	ID       int
	MatchKey string
}

// AttendanceEvent is one canonical check-in produced by the formatter.
// Immutable once produced.
type AttendanceEvent struct {
	IdentityID      int
	FullName        string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	EventName       string
	EventID         string
	Role            string
	FormSheetOrigin string
	Timestamp       time.Time
}

// InstanceKey identifies the concrete occurrence of an event. Recurring
// service events key on the calendar day so each week counts once; all other
// events key on name plus event id.
func (e AttendanceEvent) InstanceKey(loc *time.Location) string {
	if e.EventName == RecurringServiceName {
		return RecurringServiceName + InstanceKeySeparator + e.Timestamp.In(loc).Format(serviceDateLayout)
	}
	return e.EventName + InstanceKeySeparator + e.EventID
}

// IsVolunteer reports whether the event's role flags volunteering.
func (e AttendanceEvent) IsVolunteer() bool {
	return strings.Contains(strings.ToLower(e.Role), "volunteer")
}

// EventNameFromInstanceKey returns the event name portion of an instance key.
func EventNameFromInstanceKey(key string) string {
	if i := strings.Index(key, InstanceKeySeparator); i >= 0 {
		return key[:i]
	}
	return key
}

// AttendanceSummary is one per-identity aggregation result.
type AttendanceSummary struct {
	IdentityID        int       `json:"identity_id"`
	DisplayName       string    `json:"display_name"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	QuarterEventCount int       `json:"quarter_event_count"`
	MonthEventCount   int       `json:"month_event_count"`
	VolunteerCount    int       `json:"volunteer_count"`
	LastAttendedDate  time.Time `json:"last_attended_date"`
	LastEventName     string    `json:"last_event_name"`
	TotalUniqueEvents int       `json:"total_unique_events"`
	ActivityLevel     string    `json:"activity_level"`
}
