package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
)

// ProfileRequest is the body for create and adjust. PeriodDate is a
// start or an end date ("YYYY-MM-DD") depending on PeriodInputType.
type ProfileRequest struct {
	Name            string `json:"name"`
	CycleLength     int    `json:"cycle_length"`
	PeriodLength    int    `json:"period_length"`
	PeriodDate      string `json:"period_date"`
	PeriodInputType string `json:"period_input_type"`
}

type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	CycleLength     int       `json:"cycle_length"`
	PeriodLength    int       `json:"period_length"`
	LastPeriodStart string    `json:"last_period_start"`
	PeriodInputType string    `json:"period_input_type"`
	Position        int       `json:"position"`
	Accessible      bool      `json:"accessible"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Total    int               `json:"total"`
}

type CalendarResponse struct {
	ProfileID uuid.UUID          `json:"profile_id"`
	From      string             `json:"from"`
	To        string             `json:"to"`
	Days      []CalendarDayEntry `json:"days"`
}

type CalendarDayEntry struct {
	Date           string      `json:"date"`
	Phase          cycle.Phase `json:"phase"`
	IsOvulationDay bool        `json:"is_ovulation_day"`
}
