package dto

import (
	"estate/internal/domains/user/model"
	"estate/shared"
	gDto "estate/shared/dto"
	"estate/shared/timezone"
)

type UserResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Role               string  `json:"role"`
	Avatar             *string `json:"avatar,omitempty"`
	Address            *string `json:"address,omitempty"`
	IsVerified         bool    `json:"is_verified"`
	VerificationStatus string  `json:"verification_status"`
	RejectionReason    *string `json:"rejection_reason,omitempty"`
	IsActive           bool    `json:"is_active"`
	IsBlocked          bool    `json:"is_blocked"`
	BlockReason        *string `json:"block_reason,omitempty"`
	DocumentType       *string `json:"document_type,omitempty"`
	DocumentNumber     *string `json:"document_number,omitempty"`
	DocumentUploadedAt string  `json:"document_uploaded_at,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Role = mod.Role
	r.Avatar = mod.Avatar
	r.Address = mod.Address
	r.IsVerified = mod.IsVerified
	r.VerificationStatus = mod.VerificationStatus
	r.RejectionReason = mod.RejectionReason
	r.IsActive = mod.IsActive
	r.IsBlocked = mod.IsBlocked
	r.BlockReason = mod.BlockReason
	r.DocumentType = mod.DocumentType
	r.DocumentNumber = mod.DocumentNumber

	if mod.DocumentUploadedAt != nil {
		r.DocumentUploadedAt = timezone.Format(*mod.DocumentUploadedAt, "2006-01-02")
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
