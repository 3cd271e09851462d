package dto

import (
	"estate/internal/domains/property/model"
	"estate/shared"
	"estate/shared/currency"
	gDto "estate/shared/dto"
	gModel "estate/shared/model"
	"estate/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProofDocument struct {
	Type   string `json:"type"   validate:"required,max=50"`
	Number string `json:"number" validate:"required,max=100"`
	Base64 string `json:"base64" validate:"required"`
}

type CreatePropertyRequest struct {
	Name        string   `json:"name"        validate:"required,max=150"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Price       float64  `json:"price"       validate:"required,min=0"`
	Location    string   `json:"location"    validate:"required,max=150"`
	Address     *string  `json:"address"     validate:"omitempty,max=250"`
	City        *string  `json:"city"        validate:"omitempty,max=100"`
	State       *string  `json:"state"       validate:"omitempty,max=100"`
	ZipCode     *string  `json:"zip_code"    validate:"omitempty,max=20"`
	Type        string   `json:"type"        validate:"required,max=50"`
	Bedrooms    int      `json:"bedrooms"    validate:"omitempty,min=0"`
	Bathrooms   int      `json:"bathrooms"   validate:"omitempty,min=0"`
	Area        float64  `json:"area"        validate:"omitempty,min=0"`
	AreaUnit    string   `json:"area_unit"   validate:"omitempty,max=20"`
	Furnishing  string   `json:"furnishing"  validate:"omitempty,max=50"`
	Parking     bool     `json:"parking"`
	PetFriendly bool     `json:"pet_friendly"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=100"`

	// Listing photo as a data blob; uploaded to object storage on submit.
	ImageBase64      *string `json:"image_base64"       validate:"omitempty"`
	ImageContentType string  `json:"image_content_type" validate:"omitempty,max=100"`

	ProofDocument *ProofDocument `json:"proof_document" validate:"omitempty"`
}

func (c *CreatePropertyRequest) ToModel(ownerID, imageURL string) model.Property {
	areaUnit := c.AreaUnit
	if areaUnit == "" {
		areaUnit = "sqft"
	}

	prop := model.Property{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Description:    c.Description,
		Price:          c.Price,
		Location:       c.Location,
		Address:        c.Address,
		City:           c.City,
		State:          c.State,
		ZipCode:        c.ZipCode,
		Type:           c.Type,
		Bedrooms:       c.Bedrooms,
		Bathrooms:      c.Bathrooms,
		Area:           c.Area,
		AreaUnit:       areaUnit,
		Furnishing:     c.Furnishing,
		Parking:        c.Parking,
		PetFriendly:    c.PetFriendly,
		Amenities:      pq.StringArray(c.Amenities),
		ApprovalStatus: model.ApprovalStatusPending,
		IsApproved:     false,
		Status:         model.StatusAvailable,
		OwnerID:        ownerID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}

	if imageURL != "" {
		prop.ImageURL = &imageURL
	}

	if c.ProofDocument != nil {
		now := timezone.Now()
		prop.ProofDocumentType = &c.ProofDocument.Type
		prop.ProofDocumentNumber = &c.ProofDocument.Number
		prop.ProofDocumentBase64 = &c.ProofDocument.Base64
		prop.ProofUploadedAt = &now
	}

	return prop
}

type UpdatePropertyRequest struct {
	Name        string   `db:"name"         json:"name"         validate:"omitempty,max=150"`
	Description string   `db:"description"  json:"description"  validate:"omitempty,max=5000"`
	Price       *float64 `db:"price"        json:"price"        validate:"omitempty,min=0"`
	Location    string   `db:"location"     json:"location"     validate:"omitempty,max=150"`
	Address     *string  `db:"address"      json:"address"      validate:"omitempty,max=250"`
	City        *string  `db:"city"         json:"city"         validate:"omitempty,max=100"`
	State       *string  `db:"state"        json:"state"        validate:"omitempty,max=100"`
	ZipCode     *string  `db:"zip_code"     json:"zip_code"     validate:"omitempty,max=20"`
	Type        string   `db:"type"         json:"type"         validate:"omitempty,max=50"`
	Bedrooms    *int     `db:"bedrooms"     json:"bedrooms"     validate:"omitempty,min=0"`
	Bathrooms   *int     `db:"bathrooms"    json:"bathrooms"    validate:"omitempty,min=0"`
	Area        *float64 `db:"area"         json:"area"         validate:"omitempty,min=0"`
	AreaUnit    string   `db:"area_unit"    json:"area_unit"    validate:"omitempty,max=20"`
	Furnishing  string   `db:"furnishing"   json:"furnishing"   validate:"omitempty,max=50"`
	Parking     *bool    `db:"parking"      json:"parking"      validate:"omitempty"`
	PetFriendly *bool    `db:"pet_friendly" json:"pet_friendly" validate:"omitempty"`

	ImageBase64      *string `json:"image_base64"       validate:"omitempty"`
	ImageContentType string  `json:"image_content_type" validate:"omitempty,max=100"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available maintenance unlisted"`
}

type SearchPropertiesRequest struct {
	Zip        string
	City       string
	MinPrice   *float64
	MaxPrice   *float64
	Bedrooms   *int
	Type       string
	Furnishing string
}

// BuildFilter composes the approved+available gate with the caller's
// optional filters.
func (s *SearchPropertiesRequest) BuildFilter() gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldIsApproved, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusAvailable, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if s.Zip != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "zip_zip", Field: model.FieldZipCode, Value: s.Zip, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "zip_location", Field: model.FieldLocation, Value: s.Zip, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "zip_address", Field: model.FieldAddress, Value: s.Zip, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	if s.City != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldCity, Value: s.City, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if s.MinPrice != nil {
		filters = append(filters, gDto.Filter{ArgName: "min_price", Field: model.FieldPrice, Value: *s.MinPrice, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if s.MaxPrice != nil {
		filters = append(filters, gDto.Filter{ArgName: "max_price", Field: model.FieldPrice, Value: *s.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if s.Bedrooms != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldBedrooms, Value: *s.Bedrooms, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if s.Type != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldType, Value: s.Type, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if s.Furnishing != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldFurnishing, Value: s.Furnishing, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

type PropertyResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	PriceDisplay    string   `json:"price_display"`
	Location        string   `json:"location"`
	Address         *string  `json:"address,omitempty"`
	City            *string  `json:"city,omitempty"`
	State           *string  `json:"state,omitempty"`
	ZipCode         *string  `json:"zip_code,omitempty"`
	Type            string   `json:"type"`
	Bedrooms        int      `json:"bedrooms"`
	Bathrooms       int      `json:"bathrooms"`
	Area            float64  `json:"area"`
	AreaUnit        string   `json:"area_unit"`
	Furnishing      string   `json:"furnishing,omitempty"`
	Parking         bool     `json:"parking"`
	PetFriendly     bool     `json:"pet_friendly"`
	Amenities       []string `json:"amenities,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	ApprovalStatus  string   `json:"approval_status"`
	IsApproved      bool     `json:"is_approved"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	Status          string   `json:"status"`
	OwnerID         string   `json:"owner_id"`
	Views           int      `json:"views"`
	IsFavorited     bool     `json:"is_favorited"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(mod model.Property) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Price = mod.Price
	r.PriceDisplay = currency.Format(mod.Price)
	r.Location = mod.Location
	r.Address = mod.Address
	r.City = mod.City
	r.State = mod.State
	r.ZipCode = mod.ZipCode
	r.Type = mod.Type
	r.Bedrooms = mod.Bedrooms
	r.Bathrooms = mod.Bathrooms
	r.Area = mod.Area
	r.AreaUnit = mod.AreaUnit
	r.Furnishing = mod.Furnishing
	r.Parking = mod.Parking
	r.PetFriendly = mod.PetFriendly
	r.Amenities = mod.Amenities
	r.ImageURL = mod.ImageURL
	r.ApprovalStatus = mod.ApprovalStatus
	r.IsApproved = mod.IsApproved
	r.RejectionReason = mod.RejectionReason
	r.Status = mod.Status
	r.OwnerID = mod.OwnerID
	r.Views = mod.Views
	r.Metadata.FromModel(mod.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}

type TrendStatistics struct {
	Average       float64 `json:"average"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	PriceChange   float64 `json:"price_change"`
	PercentChange float64 `json:"percent_change"`
	Trend         string  `json:"trend"`
}

type TrendResponse struct {
	ZipCode    string          `json:"zip_code"`
	Labels     []string        `json:"labels"`
	Prices     []float64       `json:"prices"`
	Statistics TrendStatistics `json:"statistics"`
	SampleSize int             `json:"sample_size"`
}
