package dto

type RejectVerificationRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type BlockUserRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type RejectPropertyRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type StatsResponse struct {
	TotalUsers           int `json:"total_users"`
	TotalRenters         int `json:"total_renters"`
	TotalLandlords       int `json:"total_landlords"`
	PendingVerifications int `json:"pending_verifications"`
	BlockedUsers         int `json:"blocked_users"`

	TotalProperties    int `json:"total_properties"`
	PendingProperties  int `json:"pending_properties"`
	ApprovedProperties int `json:"approved_properties"`

	TotalBookings  int `json:"total_bookings"`
	ActiveBookings int `json:"active_bookings"`
}
