package request

type TeamMemberRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"phone" validate:"omitempty,min=6"`
}

type CreateMembershipRequest struct {
	PackageID string              `json:"package_id" validate:"required,uuid4"`
	CourtID   string              `json:"court_id" validate:"required,uuid4"`
	StartDate string              `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime string              `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string              `json:"end_time" validate:"required,datetime=15:04"`
	Members   []TeamMemberRequest `json:"members" validate:"required,min=1,dive"`
}

type MembershipCheckClashRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid4"`
	CourtID   string `json:"court_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type RenewMembershipRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type GrantLeaveRequest struct {
	MembershipID             string  `json:"membership_id" validate:"required,uuid4"`
	StartDate                string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                  string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason                   string  `json:"reason" validate:"omitempty,max=500"`
	CustomExtensionStartDate *string `json:"custom_extension_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type DeclareHolidayRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"required,min=2,max=200"`
}

type HolidayCompensationRequest struct {
	Date                     string  `json:"date" validate:"required,datetime=2006-01-02"`
	CustomExtensionStartDate *string `json:"custom_extension_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type MarkAttendanceRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}
