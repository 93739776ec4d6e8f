package clients

// CreateClientRequest is the payload for a manual client entry.
type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Plan     string  `json:"plan"`
	Status   string  `json:"status"`
	InPerson bool    `json:"in_person"`
	Notes    *string `json:"notes"`
}

// UpdateClientRequest carries the fields being changed; nil means untouched.
type UpdateClientRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Plan          *string `json:"plan"`
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	Notes         *string `json:"notes"`
}

// StatsResponse summarises the collection for the dashboard header.
type StatsResponse struct {
	Total     int            `json:"total"`
	Today     int            `json:"today"`
	ThisWeek  int            `json:"this_week"`
	ThisMonth int            `json:"this_month"`
	ByStatus  map[string]int `json:"by_status"`
}
