package model

import "time"

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	DiscordUsername string     `json:"discord_username"`
	RobloxUsername  string     `json:"roblox_username"`
	Role            string     `json:"role"`
	RegisteredAt    time.Time  `json:"registered_at"`
	HasApplied      bool       `json:"has_applied"`
	Banned          bool       `json:"banned"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateProfileRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	DiscordUsername string `json:"discord_username"`
	RobloxUsername  string `json:"roblox_username"`

	// Both must be given to change the password.
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateProfileResponse struct {
	User User `json:"user"`
}

type GetUsersRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

type BanUserRequest struct {
	ID     string `json:"id"`
	Banned bool   `json:"banned"`
}

type BanUserResponse struct{}

type SetUserRoleRequest struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type SetUserRoleResponse struct{}
