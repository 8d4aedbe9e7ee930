package models

import "time"

// RevokedToken blacklists a refresh token by its jti claim. Rows become
// irrelevant once ExpiresAt passes; validation only consults unexpired ones.
type RevokedToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	JTI       string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"jti"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	RevokedAt time.Time `gorm:"autoCreateTime" json:"revoked_at"`
}
