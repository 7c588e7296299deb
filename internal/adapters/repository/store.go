// Package repository defines the summary store interface and errors.
package repository

import (
	"context"

	"github.com/okian/rollcall/internal/domain/model"
)

// Store provides read access to the summaries of the most recent run.
type Store interface {
	// Replace swaps in a full run's summaries atomically.
	Replace(ctx context.Context, summaries []model.AttendanceSummary)

	// Get returns the summary for one identity.
	// Returns ErrNotFound if the identity is unknown.
	Get(ctx context.Context, identityID int) (model.AttendanceSummary, error)

	// List returns all summaries ordered by identity id ascending.
	List(ctx context.Context) []model.AttendanceSummary

	// Count returns the number of summaries held.
	Count(ctx context.Context) int
}
