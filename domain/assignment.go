package domain

import (
	"time"
)

// AssignmentStatus is the lifecycle state of an assignment record.
type AssignmentStatus string

const (
	StatusNone        AssignmentStatus = ""
	StatusOnboarding  AssignmentStatus = "Onboarding"
	StatusOffboarding AssignmentStatus = "Offboarding"
	StatusDeleted     AssignmentStatus = "Deleted"
)

// assignmentTransitions lists the allowed moves. Offboarding only exists
// between the return and the delete of the same record.
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	StatusNone:        {StatusOnboarding},
	StatusOnboarding:  {StatusOffboarding},
	StatusOffboarding: {StatusDeleted},
}

// CanTransition reports whether from -> to is part of the assignment lifecycle.
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range assignmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CREATE TABLE public.assignments (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     employee_id     TEXT NOT NULL,
//     name            TEXT NOT NULL,
//     role            TEXT NOT NULL,
//     laptop_name     TEXT NOT NULL,
//     status          TEXT NOT NULL,
//     date            TEXT NOT NULL,
//     return_date     TEXT
// );

type Assignment struct {
	ID         uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID string           `gorm:"column:employee_id;not null;index:idx_assignment_key" json:"employee_id"`
	Name       string           `gorm:"column:name;not null" json:"name"`
	Role       string           `gorm:"column:role;not null" json:"role"`
	LaptopName string           `gorm:"column:laptop_name;not null;index:idx_assignment_key" json:"laptop_name"`
	Status     AssignmentStatus `gorm:"column:status;type:text;not null;index:idx_assignment_key" json:"status"`
	Date       string           `gorm:"column:date;not null" json:"date"`
	ReturnDate string           `gorm:"column:return_date" json:"return_date,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// DateLayout is the calendar format used for assignment and return dates.
const DateLayout = "2006-01-02"

// FormatDate renders t the way assignment records store dates.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
