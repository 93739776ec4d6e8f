package visits

import "github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"

var (
	ErrUnknownClient = apperr.Validation("visits.create", "client_id does not match a known client")
	ErrBadCoordinate = apperr.Validation("visits.create", "latitude and longitude must be supplied together")
)
