package model

import (
	"strconv"
	"unicode"
)

// Record is a confirmed domain entity held by a collection.
type Record interface {
	RecordID() int64
	Field(name string) (string, bool)
}

// Leave statuses assigned by the server.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Searchable field sets per record kind.
var (
	LeaveSearchFields      = []string{"type", "status"}
	TimesheetSearchFields  = []string{"project", "status"}
	AllocationSearchFields = []string{"projectName", "role"}
)

// User is the authenticated employee held by the session.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Initial returns the upper-cased first letter of the user's name.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// Leave is a leave request as held by the dashboard.
type Leave struct {
	ID        int64
	Type      string
	StartDate string
	EndDate   string
	Status    string
	Days      int
	Reason    string
}

// RecordID implements Record.
func (l Leave) RecordID() int64 { return l.ID }

// Field implements Record.
func (l Leave) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.FormatInt(l.ID, 10), true
	case "type", "leaveType":
		return l.Type, true
	case "startDate":
		return l.StartDate, true
	case "endDate":
		return l.EndDate, true
	case "status":
		return l.Status, true
	case "days":
		return strconv.Itoa(l.Days), true
	case "reason":
		return l.Reason, true
	}
	return "", false
}

// Timesheet is a submitted timesheet entry.
type Timesheet struct {
	ID          int64
	Date        string
	Project     string
	HoursWorked float64
	Status      string
	Description string
}

// RecordID implements Record.
func (t Timesheet) RecordID() int64 { return t.ID }

// Field implements Record.
func (t Timesheet) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.FormatInt(t.ID, 10), true
	case "date":
		return t.Date, true
	case "project":
		return t.Project, true
	case "hoursWorked":
		return FormatHours(t.HoursWorked), true
	case "status":
		return t.Status, true
	case "description":
		return t.Description, true
	}
	return "", false
}

// Allocation is read-only project assignment data.
type Allocation struct {
	ID          int64
	ProjectName string
	Role        string
	StartDate   string
	EndDate     string
	Allocation  string
}

// RecordID implements Record.
func (a Allocation) RecordID() int64 { return a.ID }

// Field implements Record.
func (a Allocation) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.FormatInt(a.ID, 10), true
	case "projectName":
		return a.ProjectName, true
	case "role":
		return a.Role, true
	case "startDate":
		return a.StartDate, true
	case "endDate":
		return a.EndDate, true
	case "allocation":
		return a.Allocation, true
	}
	return "", false
}

// Profile holds the editable personal details of a user.
type Profile struct {
	Phone                 string
	DateOfBirth           string
	Address               string
	City                  string
	State                 string
	Country               string
	PostalCode            string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// LeaveApplication is the create payload for a leave request.
type LeaveApplication struct {
	UserID    int64
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

// TimesheetSubmission is the create payload for a timesheet entry.
type TimesheetSubmission struct {
	UserID      int64
	Date        string
	Project     string
	HoursWorked float64
	Description string
}

// FormatHours renders hours without trailing zeros ("8", "7.5").
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// DefaultAllocations is the seeded allocation list used when no remote
// source exists.
func DefaultAllocations() []Allocation {
	return []Allocation{
		{
			ID:          1,
			ProjectName: "Project Alpha",
			Role:        "Senior Developer",
			StartDate:   "2025-01-15",
			EndDate:     "2025-12-31",
			Allocation:  "80%",
		},
		{
			ID:          2,
			ProjectName: "Project Beta",
			Role:        "Tech Lead",
			StartDate:   "2025-06-01",
			EndDate:     "2025-12-31",
			Allocation:  "20%",
		},
	}
}
