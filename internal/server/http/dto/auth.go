package dto

// OTPRequest starts a phone verification.
type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// OTPResponse tells the client how long to wait before offering a resend.
type OTPResponse struct {
	Phone           string `json:"phone"`
	Length          int    `json:"length"`
	ResendInSeconds int    `json:"resendInSeconds"`
}

// VerifyRequest submits the received code.
type VerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyResponse confirms the verified phone.
type VerifyResponse struct {
	Phone    string `json:"phone"`
	Verified bool   `json:"verified"`
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone" binding:"required"`
}
