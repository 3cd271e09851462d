package model

import (
	"time"

	"github.com/lib/pq"

	"estate/shared/model"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldLocation        = "location"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldState           = "state"
	FieldZipCode         = "zip_code"
	FieldType            = "type"
	FieldBedrooms        = "bedrooms"
	FieldBathrooms       = "bathrooms"
	FieldArea            = "area"
	FieldAreaUnit        = "area_unit"
	FieldFurnishing      = "furnishing"
	FieldParking         = "parking"
	FieldPetFriendly     = "pet_friendly"
	FieldAmenities       = "amenities"
	FieldImageURL        = "image_url"
	FieldProofType       = "proof_document_type"
	FieldProofNumber     = "proof_document_number"
	FieldProofBase64     = "proof_document_base64"
	FieldProofUploadedAt = "proof_uploaded_at"
	FieldApprovalStatus  = "approval_status"
	FieldIsApproved      = "is_approved"
	FieldApprovedBy      = "approved_by"
	FieldApprovedAt      = "approved_at"
	FieldRejectionReason = "rejection_reason"
	FieldStatus          = "status"
	FieldOwnerID         = "owner_id"
	FieldViews           = "views"
)

const (
	ApprovalStatusPending     = "pending"
	ApprovalStatusApproved    = "approved"
	ApprovalStatusRejected    = "rejected"
	ApprovalStatusUnderReview = "under_review"
)

const (
	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
	StatusUnlisted    = "unlisted"
)

// Types accepted for a listing; mirrors the catalogue shown in the storefront.
var Types = []string{
	"Luxury Apartment",
	"Modern Villa",
	"Premium Residence",
	"Urban Home",
	"Garden Estate",
	"Coastal Villa",
	"Modern Apartment",
	"Luxury Penthouse",
	"Studio Apartment",
	"Duplex",
}

type Property struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Location    string  `db:"location"`
	Address     *string `db:"address"`
	City        *string `db:"city"`
	State       *string `db:"state"`
	ZipCode     *string `db:"zip_code"`

	Type        string         `db:"type"`
	Bedrooms    int            `db:"bedrooms"`
	Bathrooms   int            `db:"bathrooms"`
	Area        float64        `db:"area"`
	AreaUnit    string         `db:"area_unit"`
	Furnishing  string         `db:"furnishing"`
	Parking     bool           `db:"parking"`
	PetFriendly bool           `db:"pet_friendly"`
	Amenities   pq.StringArray `db:"amenities"`
	ImageURL    *string        `db:"image_url"`

	// Proof of ownership, stored inline as an opaque base64 blob.
	ProofDocumentType   *string    `db:"proof_document_type"`
	ProofDocumentNumber *string    `db:"proof_document_number"`
	ProofDocumentBase64 *string    `db:"proof_document_base64"`
	ProofUploadedAt     *time.Time `db:"proof_uploaded_at"`

	ApprovalStatus  string     `db:"approval_status"`
	IsApproved      bool       `db:"is_approved"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	RejectionReason *string    `db:"rejection_reason"`

	Status  string `db:"status"`
	OwnerID string `db:"owner_id"`
	Views   int    `db:"views"`
	model.Metadata
}

// Bookable reports whether a renter may open a booking against the listing.
func (p *Property) Bookable() bool {
	return p.IsApproved && p.Status == StatusAvailable
}
