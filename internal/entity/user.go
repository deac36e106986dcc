package entity

import (
	"database/sql"

	"github.com/clanhub/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base

	Email           string `gorm:"unique"`
	HashedPassword  string
	Username        string `gorm:"unique"`
	DiscordUsername string
	RobloxUsername  string
	Role            GlobalRole `gorm:"default:user"`
	HasApplied      bool
	Banned          bool
	IPAddress       string
	LastLoginAt     sql.NullTime
}
