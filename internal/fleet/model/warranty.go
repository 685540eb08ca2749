package model

import "time"

type WarrantyStatus string

const (
	WarrantyExpired       WarrantyStatus = "EXPIRED"
	WarrantyExpiringSoon  WarrantyStatus = "EXPIRING_SOON"
	WarrantyActive        WarrantyStatus = "ACTIVE"
	WarrantyNotApplicable WarrantyStatus = "NOT_APPLICABLE"
)

// WarrantyInfo is recomputed on demand from the underlying task and is
// never persisted as the source of truth.
type WarrantyInfo struct {
	ExpiryDate    *time.Time
	Status        WarrantyStatus
	DaysRemaining *int
}
