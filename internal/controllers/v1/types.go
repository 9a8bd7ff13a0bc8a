package v1

import (
	"time"

	ct_uuid "github.com/centuition/backend/internal/uuid"
)

// timeNow is replaceable in tests.
var timeNow = time.Now

type URIID struct {
	ID ct_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-04"` // Year and month in YYYY-MM format
}

type QueryDateRange struct {
	From  time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" example:"2024-04-01"`  // First day of the range, inclusive
	Until time.Time `form:"until" time_format:"2006-01-02" time_utc:"1" example:"2024-04-30"` // Last day of the range, inclusive
}
