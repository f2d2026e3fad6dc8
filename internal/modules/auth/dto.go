package auth

import "motopartes/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Username  string `json:"username" validate:"max=50"`
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Password  string `json:"password" binding:"required,min=8" validate:"required,min=8"`
}

// RedirectOption is one destination offered after login.
type RedirectOption struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type UserView struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name,omitempty"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
}

type SessionView struct {
	Token           string           `json:"token"`
	ExpiresIn       int64            `json:"expires_in"`
	User            UserView         `json:"user"`
	RedirectOptions []RedirectOption `json:"redirect_options"`
}

func toUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
