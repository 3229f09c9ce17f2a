package users

import "time"

const (
	RoleUser   = "user"
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Name         string `gorm:"type:varchar(191);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash []byte `gorm:"type:varbinary(72);not null"`
	Role         string `gorm:"type:varchar(16);not null;index:ix_users_role"`

	// Clients (wholesale accounts) cannot sign in until an admin
	// approves them; users and admins are approved from the start.
	Approved bool `gorm:"not null"`

	Phone   string `gorm:"type:varchar(32)"`
	Address string `gorm:"type:varchar(512)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }
