package handler

import "time"

// --- Request types ---

type signupRequest struct {
	Email           string `json:"email"           validate:"required,email"`
	Username        string `json:"username"        validate:"required,min=3,max=30,username"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password"        validate:"required"`
}

type updateProfileRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Password *string `json:"password"`
}

// --- Response types ---

// authUser is the public projection returned alongside a token. The password
// hash never appears in any response shape.
type authUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type authResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    authUser `json:"user"`
}

// profileResponse is flattened rather than nested under "user"; the client
// depends on this exact shape.
type profileResponse struct {
	Success   bool      `json:"success"`
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
