package models

import "time"

const (
	RoleApplicant = "applicant"
	RoleStaff     = "staff"
)

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"`
	Email     string  `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string  `gorm:"type:varchar(255);not null" json:"-"`
	Role      string  `gorm:"type:varchar(20);not null;default:'applicant'" json:"role"`
	Avatar    string  `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	Profile   Profile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the applicant details submitted alongside an application.
// A copy of it is frozen onto the Application at submit time.
type Profile struct {
	FirstName            string `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	MiddleName           string `gorm:"type:varchar(100)" json:"middle_name,omitempty"`
	LastName             string `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	DOB                  string `gorm:"type:varchar(20)" json:"dob,omitempty"`
	Age                  string `gorm:"type:varchar(10)" json:"age,omitempty"`
	Gender               string `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Nationality          string `gorm:"type:varchar(100)" json:"nationality,omitempty"`
	Location             string `gorm:"type:varchar(255)" json:"location,omitempty"`
	Phone                string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Bio                  string `gorm:"type:text" json:"bio,omitempty"`
	GuardianName         string `gorm:"type:varchar(255)" json:"guardian_name,omitempty"`
	GuardianRelationship string `gorm:"type:varchar(100)" json:"guardian_relationship,omitempty"`
	GuardianContact      string `gorm:"type:varchar(100)" json:"guardian_contact,omitempty"`
	EducationLevel       string `gorm:"type:varchar(100)" json:"education_level,omitempty"`
	SchoolName           string `gorm:"type:varchar(255)" json:"school_name,omitempty"`
	StudentID            string `gorm:"type:varchar(100)" json:"student_id,omitempty"`
	Major                string `gorm:"type:varchar(255)" json:"major,omitempty"`
	GPA                  string `gorm:"type:varchar(20)" json:"gpa,omitempty"`
	IncomeRange          string `gorm:"type:varchar(100)" json:"income_range,omitempty"`
	HouseholdSize        int    `json:"household_size,omitempty"`
	IsWorkingStudent     bool   `json:"is_working_student,omitempty"`
}

// DisplayName prefers the split profile name over the account name.
func (u *User) DisplayName() string {
	if u.Profile.FirstName != "" && u.Profile.LastName != "" {
		if u.Profile.MiddleName != "" {
			return u.Profile.FirstName + " " + u.Profile.MiddleName + " " + u.Profile.LastName
		}
		return u.Profile.FirstName + " " + u.Profile.LastName
	}
	return u.Name
}
