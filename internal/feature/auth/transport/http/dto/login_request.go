package dto

// LoginReq is the body of POST /auth/login.
// メールアドレスの正規化（小文字化・trim）はusecase側で行うため、ここでは形式のみ検証します。
type LoginReq struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
