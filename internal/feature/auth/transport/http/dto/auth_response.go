package dto

import (
	"time"

	"inventory_backend/internal/feature/auth/domain/entity"
)

// UserResponse はクライアントに返すユーザー情報です。パスワードハッシュは含みません。
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse はサインアップ・ログイン成功時のレスポンスです。
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a stored user into its public summary.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
