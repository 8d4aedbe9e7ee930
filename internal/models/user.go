package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusBanned  AccountStatus = "banned"
	AccountStatusDeleted AccountStatus = "deleted"
)

type User struct {
	ID uint64 `gorm:"primarykey" json:"id"`
	// Uniqueness runs against active accounts only, in the service layer:
	// a deleted account's address may be registered again.
	Email        string `gorm:"type:varchar(255);index;not null" json:"email"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Surname      string `gorm:"type:varchar(100);not null" json:"surname"`
	Patronym     string `gorm:"type:varchar(100)" json:"patronym"`
	FullName     string `gorm:"type:varchar(300)" json:"full_name"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Nil when no role is assigned. Role rows from the original schema are
	// collapsed into this column; capability sets live in internal/policy.
	Role *RoleName `gorm:"type:varchar(50);index" json:"role"`

	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace string     `gorm:"type:varchar(200)" json:"birth_place"`

	// IsActive tracks "currently logged in", independent of AccountStatus.
	IsActive      bool          `gorm:"not null;default:false" json:"is_active"`
	AccountStatus AccountStatus `gorm:"type:varchar(20);not null;default:'active'" json:"account_status"`
	IsStaff       bool          `gorm:"not null;default:false" json:"is_staff"`

	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Tasks    []Task        `gorm:"foreignKey:UserID" json:"-"`
	Sessions []UserSession `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeSave recomputes the composed full name and forces the staff flag
// for moderators, mirroring the account rules on every write.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.FullName = strings.TrimSpace(u.Surname + " " + u.Name + " " + u.Patronym)
	// Collapse inner whitespace when patronym is empty
	u.FullName = strings.Join(strings.Fields(u.FullName), " ")

	if u.Role != nil && *u.Role == RoleModerator {
		u.IsStaff = true
	}
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	return nil
}

func (u *User) HasRole(role RoleName) bool {
	return u.Role != nil && *u.Role == role
}

func (u *User) IsAdministrator() bool { return u.HasRole(RoleAdministrator) }
func (u *User) IsModerator() bool     { return u.HasRole(RoleModerator) }
func (u *User) IsPlainUser() bool     { return u.HasRole(RoleUser) }
