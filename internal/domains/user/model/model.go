package model

import (
	"time"

	"estate/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                 = "id"
	FieldName               = "name"
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldPhone              = "phone"
	FieldRole               = "role"
	FieldAvatar             = "avatar"
	FieldAddress            = "address"
	FieldDocumentType       = "document_type"
	FieldDocumentNumber     = "document_number"
	FieldDocumentBase64     = "document_base64"
	FieldDocumentUploadedAt = "document_uploaded_at"
	FieldIsVerified         = "is_verified"
	FieldVerificationStatus = "verification_status"
	FieldVerifiedAt         = "verified_at"
	FieldVerifiedBy         = "verified_by"
	FieldRejectionReason    = "rejection_reason"
	FieldIsActive           = "is_active"
	FieldIsBlocked          = "is_blocked"
	FieldBlockReason        = "block_reason"
	FieldLastLogin          = "last_login"
)

const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

type User struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Email    string  `db:"email"`
	Password string  `db:"password"`
	Phone    string  `db:"phone"`
	Role     string  `db:"role"`
	Avatar   *string `db:"avatar"`
	Address  *string `db:"address"`

	// Identity verification document, stored inline as an opaque base64 blob.
	DocumentType       *string    `db:"document_type"`
	DocumentNumber     *string    `db:"document_number"`
	DocumentBase64     *string    `db:"document_base64"`
	DocumentUploadedAt *time.Time `db:"document_uploaded_at"`

	IsVerified         bool       `db:"is_verified"`
	VerificationStatus string     `db:"verification_status"`
	VerifiedAt         *time.Time `db:"verified_at"`
	VerifiedBy         *string    `db:"verified_by"`
	RejectionReason    *string    `db:"rejection_reason"`

	IsActive    bool       `db:"is_active"`
	IsBlocked   bool       `db:"is_blocked"`
	BlockReason *string    `db:"block_reason"`
	LastLogin   *time.Time `db:"last_login"`
	model.Metadata
}
