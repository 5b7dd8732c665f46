package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type TeamMemberResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type MembershipResponse struct {
	ID             string                  `json:"id"`
	PackageID      string                  `json:"package_id"`
	CourtID        string                  `json:"court_id"`
	StartTime      string                  `json:"start_time"`
	EndTime        string                  `json:"end_time"`
	StartDate      string                  `json:"start_date"`
	CurrentEndDate string                  `json:"current_end_date"`
	Status         entity.MembershipStatus `json:"status"`
	Members        []TeamMemberResponse    `json:"members,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

func MembershipToResponse(m *entity.Membership) MembershipResponse {
	members := make([]TeamMemberResponse, 0, len(m.Members))
	for _, member := range m.Members {
		members = append(members, TeamMemberResponse{
			ID:    member.ID.String(),
			Name:  member.Name,
			Phone: member.Phone,
		})
	}

	return MembershipResponse{
		ID:             m.ID.String(),
		PackageID:      m.PackageID.String(),
		CourtID:        m.CourtID.String(),
		StartTime:      m.Window.StartClock(),
		EndTime:        m.Window.EndClock(),
		StartDate:      m.StartDate.Format(entity.DateLayout),
		CurrentEndDate: m.CurrentEndDate.Format(entity.DateLayout),
		Status:         m.Status,
		Members:        members,
		CreatedAt:      m.CreatedAt,
	}
}

type MembershipClashResponse struct {
	IsClashing bool   `json:"is_clashing"`
	Message    string `json:"message"`
}

// ExtensionConflict is one day the extension engine could not place.
type ExtensionConflict struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ExtensionResponse is the structured alternate-path result of a leave or
// holiday grant. Status "conflict" is not an error; the caller supplies a
// custom extension start date and retries.
type ExtensionResponse struct {
	Status         string              `json:"status"`
	NewEndDate     string              `json:"new_end_date,omitempty"`
	ExtensionStart string              `json:"extension_start,omitempty"`
	ExtensionEnd   string              `json:"extension_end,omitempty"`
	Conflicts      []ExtensionConflict `json:"conflicts,omitempty"`
}

type LeaveRecordResponse struct {
	ID                string  `json:"id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Reason            string  `json:"reason,omitempty"`
	Kind              string  `json:"kind"`
	Status            string  `json:"status"`
	CompensationStart *string `json:"compensation_start,omitempty"`
	CompensationEnd   *string `json:"compensation_end,omitempty"`
}

func LeaveToResponse(l *entity.LeaveRecord) LeaveRecordResponse {
	resp := LeaveRecordResponse{
		ID:        l.ID.String(),
		StartDate: l.StartDate.Format(entity.DateLayout),
		EndDate:   l.EndDate.Format(entity.DateLayout),
		Reason:    l.Reason,
		Kind:      string(l.Kind),
		Status:    string(l.Status),
	}
	if l.CompensationStart != nil {
		s := l.CompensationStart.Format(entity.DateLayout)
		resp.CompensationStart = &s
	}
	if l.CompensationEnd != nil {
		e := l.CompensationEnd.Format(entity.DateLayout)
		resp.CompensationEnd = &e
	}
	return resp
}

type HolidayResponse struct {
	ID                  string   `json:"id"`
	Date                string   `json:"date"`
	Reason              string   `json:"reason"`
	AffectedMemberships []string `json:"affected_memberships,omitempty"`
}

type AttendanceHistoryResponse struct {
	MembershipID  string   `json:"membership_id"`
	AttendedDates []string `json:"attended_dates"`
}

type LeaveHistoryResponse struct {
	MembershipID string                `json:"membership_id"`
	LeaveWindows []LeaveRecordResponse `json:"leave_windows"`
}
