package model

type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// UserSummary is the account record the API returns for a signed-in user
// and the one cached in durable storage.
type UserSummary struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   string     `json:"last_login_at,omitempty"`
	CreatedAt     string     `json:"created_at,omitempty"`
}

func (u *UserSummary) HasRole(role Role) bool {
	return u != nil && u.Role == role
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetInput struct {
	NewPassword string `json:"new_password"`
}

// UserUpdate carries the admin-editable user fields. Nil fields are left
// unchanged server-side.
type UserUpdate struct {
	Name   *string     `json:"name,omitempty"`
	Email  *string     `json:"email,omitempty"`
	Role   *Role       `json:"role,omitempty"`
	Status *UserStatus `json:"status,omitempty"`
}

type UserStatusInput struct {
	Status UserStatus `json:"status"`
}

type UserFilters struct {
	Role   Role
	Status UserStatus
}

type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *UserSummary `json:"user"`
}

type UserEnvelope struct {
	Message string       `json:"message,omitempty"`
	User    *UserSummary `json:"user"`
}

type UserList struct {
	Users []UserSummary `json:"users"`
	Count int           `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body every failed API call carries.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
