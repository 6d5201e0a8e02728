package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrUnknownField is returned when a draft is updated with a field name
// outside its fixed field set.
var ErrUnknownField = errors.New("unknown field")

// Leave types offered by the leave form.
const (
	LeaveCasual    = "Casual Leave"
	LeaveSick      = "Sick Leave"
	LeaveAnnual    = "Annual Leave"
	LeaveMaternity = "Maternity Leave"

	DefaultLeaveType = LeaveCasual
)

// LeaveTypes lists the selectable leave types in display order.
var LeaveTypes = []string{LeaveCasual, LeaveSick, LeaveAnnual, LeaveMaternity}

// MaxHoursPerDay bounds a single timesheet entry.
const MaxHoursPerDay = 24.0

// LeaveDraft is an unsaved leave request.
type LeaveDraft struct {
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

var leaveDraftFields = []string{"leaveType", "startDate", "endDate", "reason"}

// NewLeaveDraft returns a draft with the default leave type.
func NewLeaveDraft() LeaveDraft {
	return LeaveDraft{LeaveType: DefaultLeaveType}
}

// Fields lists the editable field names.
func (d LeaveDraft) Fields() []string { return leaveDraftFields }

// Value returns the current value of field.
func (d LeaveDraft) Value(field string) string {
	switch field {
	case "leaveType":
		return d.LeaveType
	case "startDate":
		return d.StartDate
	case "endDate":
		return d.EndDate
	case "reason":
		return d.Reason
	}
	return ""
}

// With returns a copy of the draft with field set to value.
func (d LeaveDraft) With(field, value string) (LeaveDraft, error) {
	switch field {
	case "leaveType":
		d.LeaveType = value
	case "startDate":
		d.StartDate = value
	case "endDate":
		d.EndDate = value
	case "reason":
		d.Reason = value
	default:
		return d, fmt.Errorf("leave draft %q: %w", field, ErrUnknownField)
	}
	return d, nil
}

// Validate checks the draft before it is sent.
func (d LeaveDraft) Validate() error {
	var result *multierror.Error
	if !isLeaveType(d.LeaveType) {
		result = multierror.Append(result, fmt.Errorf("Unknown leave type %q", d.LeaveType))
	}
	if strings.TrimSpace(d.StartDate) == "" {
		result = multierror.Append(result, errors.New("Start date is required"))
	}
	if strings.TrimSpace(d.EndDate) == "" {
		result = multierror.Append(result, errors.New("End date is required"))
	}
	if strings.TrimSpace(d.Reason) == "" {
		result = multierror.Append(result, errors.New("Reason is required"))
	}
	return result.ErrorOrNil()
}

// Application builds the create payload for userID.
func (d LeaveDraft) Application(userID int64) LeaveApplication {
	return LeaveApplication{
		UserID:    userID,
		LeaveType: d.LeaveType,
		StartDate: strings.TrimSpace(d.StartDate),
		EndDate:   strings.TrimSpace(d.EndDate),
		Reason:    d.Reason,
	}
}

// NextLeaveType returns the leave type after current, wrapping around.
func NextLeaveType(current string, delta int) string {
	idx := 0
	for i, t := range LeaveTypes {
		if t == current {
			idx = i
			break
		}
	}
	n := len(LeaveTypes)
	return LeaveTypes[((idx+delta)%n+n)%n]
}

func isLeaveType(value string) bool {
	for _, t := range LeaveTypes {
		if t == value {
			return true
		}
	}
	return false
}

// TimesheetDraft is an unsaved timesheet entry. Hours are kept as typed.
type TimesheetDraft struct {
	Date        string
	Project     string
	HoursWorked string
	Description string
}

var timesheetDraftFields = []string{"date", "project", "hoursWorked", "description"}

// NewTimesheetDraft returns an empty draft.
func NewTimesheetDraft() TimesheetDraft {
	return TimesheetDraft{}
}

// Fields lists the editable field names.
func (d TimesheetDraft) Fields() []string { return timesheetDraftFields }

// Value returns the current value of field.
func (d TimesheetDraft) Value(field string) string {
	switch field {
	case "date":
		return d.Date
	case "project":
		return d.Project
	case "hoursWorked":
		return d.HoursWorked
	case "description":
		return d.Description
	}
	return ""
}

// With returns a copy of the draft with field set to value.
func (d TimesheetDraft) With(field, value string) (TimesheetDraft, error) {
	switch field {
	case "date":
		d.Date = value
	case "project":
		d.Project = value
	case "hoursWorked":
		d.HoursWorked = value
	case "description":
		d.Description = value
	default:
		return d, fmt.Errorf("timesheet draft %q: %w", field, ErrUnknownField)
	}
	return d, nil
}

// Validate checks the draft before it is sent.
func (d TimesheetDraft) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(d.Date) == "" {
		result = multierror.Append(result, errors.New("Date is required"))
	}
	if strings.TrimSpace(d.Project) == "" {
		result = multierror.Append(result, errors.New("Project is required"))
	}
	if strings.TrimSpace(d.HoursWorked) == "" {
		result = multierror.Append(result, errors.New("Hours worked is required"))
	} else if _, err := ParseHours(d.HoursWorked); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Submission builds the create payload for userID. It fails when the hours
// do not validate.
func (d TimesheetDraft) Submission(userID int64) (TimesheetSubmission, error) {
	hours, err := ParseHours(d.HoursWorked)
	if err != nil {
		return TimesheetSubmission{}, err
	}
	return TimesheetSubmission{
		UserID:      userID,
		Date:        strings.TrimSpace(d.Date),
		Project:     strings.TrimSpace(d.Project),
		HoursWorked: hours,
		Description: d.Description,
	}, nil
}

// ParseHours parses an hours value and checks it lies in (0, 24].
func ParseHours(value string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, errors.New("Hours worked must be a number")
	}
	if hours <= 0 || hours > MaxHoursPerDay {
		return 0, errors.New("Enter valid hours (0-24)")
	}
	return hours, nil
}

// ProfileDraft is the editable copy of a profile.
type ProfileDraft struct {
	Profile
}

var profileDraftFields = []string{
	"phone",
	"dateOfBirth",
	"address",
	"city",
	"state",
	"country",
	"postalCode",
	"emergencyContactName",
	"emergencyContactPhone",
}

// NewProfileDraft starts a draft from the stored profile.
func NewProfileDraft(p Profile) ProfileDraft {
	return ProfileDraft{Profile: p}
}

// Fields lists the editable field names.
func (d ProfileDraft) Fields() []string { return profileDraftFields }

// Value returns the current value of field.
func (d ProfileDraft) Value(field string) string {
	if ptr := d.field(field); ptr != nil {
		return *ptr
	}
	return ""
}

// With returns a copy of the draft with field set to value.
func (d ProfileDraft) With(field, value string) (ProfileDraft, error) {
	ptr := d.field(field)
	if ptr == nil {
		return d, fmt.Errorf("profile draft %q: %w", field, ErrUnknownField)
	}
	*ptr = value
	return d, nil
}

// Validate accepts any profile; every field is optional.
func (d ProfileDraft) Validate() error { return nil }

func (d *ProfileDraft) field(name string) *string {
	switch name {
	case "phone":
		return &d.Phone
	case "dateOfBirth":
		return &d.DateOfBirth
	case "address":
		return &d.Address
	case "city":
		return &d.City
	case "state":
		return &d.State
	case "country":
		return &d.Country
	case "postalCode":
		return &d.PostalCode
	case "emergencyContactName":
		return &d.EmergencyContactName
	case "emergencyContactPhone":
		return &d.EmergencyContactPhone
	}
	return nil
}
