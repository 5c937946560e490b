package models

import "time"

// Experience is a position in the work history.
type Experience struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	StartDate Date   `json:"start_date"`
	// EndDate is nil for open-ended positions and always nil when IsCurrent is set.
	EndDate          *Date      `json:"end_date"`
	IsCurrent        bool       `json:"is_current"`
	Description      string     `json:"description"`
	Responsibilities StringList `json:"responsibilities"`
	Technologies     StringList `json:"technologies"`
	DisplayOrder     int        `json:"display_order"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Normalize drops EndDate from a current position.
func (e *Experience) Normalize() {
	if e.IsCurrent {
		e.EndDate = nil
	}
}

// ExperiencePatch carries the fields of a partial experience update.
//
// EndDate distinguishes "absent" (nil) from "set to NULL" (ClearEndDate).
type ExperiencePatch struct {
	Title            *string
	Company          *string
	Location         *string
	StartDate        *Date
	EndDate          *Date
	ClearEndDate     bool
	IsCurrent        *bool
	Description      *string
	Responsibilities *StringList
	Technologies     *StringList
	DisplayOrder     *int
}

// Normalize makes a patch that marks the position current also clear its end date.
func (p *ExperiencePatch) Normalize() {
	if p.IsCurrent != nil && *p.IsCurrent {
		p.EndDate = nil
		p.ClearEndDate = true
	}
}
