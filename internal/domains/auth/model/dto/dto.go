package dto

import (
	"time"

	"estate/infras/jwt"
	userModel "estate/internal/domains/user/model"
	userDto "estate/internal/domains/user/model/dto"
	"estate/shared/constant"
	gModel "estate/shared/model"
	"estate/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"    validate:"required,max=20"`
	Role     string `json:"role"     validate:"omitempty,oneof=renter landlord"`
}

// ToUserModel builds the account record. Accounts on the reserved admin
// domain are created pre-verified with the admin role, whatever role the
// request asked for.
func (r *RegisterRequest) ToUserModel(hashedPassword string, isAdmin bool) userModel.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleRenter
	}

	user := userModel.User{
		ID:                 uuid.NewString(),
		Name:               r.Name,
		Email:              r.Email,
		Password:           hashedPassword,
		Phone:              r.Phone,
		Role:               role,
		VerificationStatus: userModel.VerificationStatusPending,
		IsActive:           true,
	}

	user.Metadata = gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user.ID,
		ModifiedBy: user.ID,
	}

	if isAdmin {
		now := timezone.Now()
		user.Role = constant.RoleAdmin
		user.IsVerified = true
		user.VerificationStatus = userModel.VerificationStatusApproved
		user.VerifiedAt = &now
	}

	return user
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name    string  `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Phone   string  `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Avatar  *string `db:"avatar"  json:"avatar"  validate:"omitempty"`
	Address *string `db:"address" json:"address" validate:"omitempty,max=250"`
}

type UploadDocumentRequest struct {
	DocumentType   string `json:"document_type"   validate:"required,max=50"`
	DocumentNumber string `json:"document_number" validate:"required,max=100"`
	DocumentBase64 string `json:"document_base64" validate:"required"`
}
