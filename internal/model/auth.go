package model

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RefreshToken struct {
	ID string `json:"id"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Username        string `json:"username"`
	DiscordUsername string `json:"discord_username"`
	RobloxUsername  string `json:"roblox_username"`
}

type RegisterResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
