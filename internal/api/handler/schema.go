package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	IsAdmin  bool   `json:"is_admin"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=4"`
}

type movieRequest struct {
	Title         string `json:"title"           validate:"required,max=200"`
	Description   string `json:"description"     validate:"required"`
	Author        string `json:"author"          validate:"required"`
	Genre         string `json:"genre"           validate:"required,genre"`
	DateOfRelease string `json:"date_of_release" validate:"required,datetime=2006-01-02"`
}

// --- Response types ---
// Kept apart from domain types so the JSON contract does not leak the
// password hash or role bookkeeping.

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type createUserResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type movieResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	DateOfRelease string    `json:"date_of_release"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
