package models

import "time"

// Staff and student roles recognised by the API.
const (
	RoleAdmin            = "admin"
	RoleCourseDirector   = "course_director"
	RoleWellbeingOfficer = "wellbeing_officer"
	RoleStudent          = "student"
)

// StaffRoles lists the roles allowed to view risk data.
var StaffRoles = []string{RoleAdmin, RoleCourseDirector, RoleWellbeingOfficer}

// User is an account able to sign in to the platform.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
