package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/emphub/internal/model"
)

// wireLeave mirrors a leave row as returned by /leaves.
type wireLeave struct {
	ID        int64     `json:"id"`
	LeaveType string    `json:"leave_type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	Days      flexFloat `json:"days"`
	Reason    string    `json:"reason"`
}

func (w wireLeave) record() model.Leave {
	return model.Leave{
		ID:        w.ID,
		Type:      w.LeaveType,
		StartDate: model.NormalizeDate(w.StartDate),
		EndDate:   model.NormalizeDate(w.EndDate),
		Status:    w.Status,
		Days:      int(math.Round(float64(w.Days))),
		Reason:    w.Reason,
	}
}

type leaveEnvelope struct {
	Leave *wireLeave `json:"leave"`
}

type applyLeaveRequest struct {
	UserID    int64  `json:"user_id"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// wireTimesheet mirrors a timesheet row as returned by /timesheets.
type wireTimesheet struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	HoursWorked flexFloat `json:"hours_worked"`
	Project     string    `json:"project"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

func (w wireTimesheet) record() model.Timesheet {
	return model.Timesheet{
		ID:          w.ID,
		Date:        model.NormalizeDate(w.Date),
		Project:     w.Project,
		HoursWorked: float64(w.HoursWorked),
		Status:      w.Status,
		Description: w.Description,
	}
}

type timesheetEnvelope struct {
	Timesheet *wireTimesheet `json:"timesheet"`
}

type submitTimesheetRequest struct {
	UserID      int64   `json:"user_id"`
	Date        string  `json:"date"`
	Project     string  `json:"project"`
	HoursWorked float64 `json:"hours_worked"`
	Description string  `json:"description"`
}

// wireProfile is used for both the profile response and the save request.
type wireProfile struct {
	UserID                int64  `json:"user_id,omitempty"`
	Phone                 string `json:"phone"`
	DateOfBirth           string `json:"date_of_birth"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	Country               string `json:"country"`
	PostalCode            string `json:"postal_code"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

func (w wireProfile) record() model.Profile {
	return model.Profile{
		Phone:                 w.Phone,
		DateOfBirth:           model.NormalizeDate(w.DateOfBirth),
		Address:               w.Address,
		City:                  w.City,
		State:                 w.State,
		Country:               w.Country,
		PostalCode:            w.PostalCode,
		EmergencyContactName:  w.EmergencyContactName,
		EmergencyContactPhone: w.EmergencyContactPhone,
	}
}

func profileFromRecord(userID int64, p model.Profile) wireProfile {
	return wireProfile{
		UserID:                userID,
		Phone:                 p.Phone,
		DateOfBirth:           p.DateOfBirth,
		Address:               p.Address,
		City:                  p.City,
		State:                 p.State,
		Country:               p.Country,
		PostalCode:            p.PostalCode,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type wireUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (w wireUser) record() model.User {
	return model.User{ID: w.ID, Name: w.Name, Email: w.Email}
}

// flexFloat accepts a JSON number or a numeric string; SQL NUMERIC columns
// are often serialized as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
