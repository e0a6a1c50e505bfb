package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
)

// Period date entry modes. The stored LastPeriodStart is always a start
// date; end-date entries are converted on save.
const (
	PeriodInputStart = "start"
	PeriodInputEnd   = "end"
)

// TrackedProfile is one individual whose cycle is recorded under an
// account. CreatedAt is set once on first save and determines ordinal
// position; the position itself is derived, never stored.
type TrackedProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID       uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	Name            string    `gorm:"not null;size:100" json:"name"`
	CycleLength     int       `gorm:"not null" json:"cycle_length"`
	PeriodLength    int       `gorm:"not null" json:"period_length"`
	LastPeriodStart time.Time `gorm:"not null" json:"last_period_start"`
	PeriodInputType string    `gorm:"size:10;not null;default:'start'" json:"period_input_type"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Account         Account   `gorm:"foreignKey:AccountID" json:"-"`
}

// Facts returns the projection inputs, with the stored timestamp
// truncated to a date-only value.
func (p *TrackedProfile) Facts() cycle.Facts {
	return cycle.Facts{
		LastPeriodStart: cycle.DateOnly(p.LastPeriodStart),
		CycleLength:     p.CycleLength,
		PeriodLength:    p.PeriodLength,
	}
}

// PositionOf returns the zero-based ordinal position of id within a
// creation-ordered profile list, or -1 when absent. Deleting an earlier
// profile shifts later ones down, which is what re-opens free-tier
// access for a formerly third profile.
func PositionOf(profiles []TrackedProfile, id uuid.UUID) int {
	for i := range profiles {
		if profiles[i].ID == id {
			return i
		}
	}
	return -1
}
