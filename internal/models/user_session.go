package models

import "time"

// UserSession is an audit record of a login event. Deleting all of a
// user's sessions is the logout mechanism; nothing else reads this table.
type UserSession struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	UserID    uint64 `gorm:"not null;index" json:"user_id"`
	IPAddress string `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string `gorm:"type:text" json:"user_agent"`

	ScreenSize string `gorm:"type:varchar(20)" json:"screen_size"`
	Timezone   string `gorm:"type:varchar(50);default:'UTC'" json:"timezone"`
	Language   string `gorm:"type:varchar(10);default:'en-US'" json:"language"`

	// Per-user login sequence, assigned as count+1 at login time.
	ConnectionNumber int `gorm:"not null;default:1" json:"connection_number"`

	ExtraMetadata map[string]interface{} `gorm:"serializer:json" json:"extra_metadata"`

	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `gorm:"autoUpdateTime" json:"last_activity_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
