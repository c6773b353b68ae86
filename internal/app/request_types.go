package app

import (
	"time"

	"fulfillment-invoicer/internal/core"
)

// ProcessRequest is the input for one processing run.
type ProcessRequest struct {
	// Records in source order, as read from the export.
	Records []core.RawRecord

	// Tariff rates, validated before any record is processed.
	Tariff core.Tariff

	// Inclusive fulfillment date window. Only the calendar date matters.
	StartDate time.Time
	EndDate   time.Time

	// Product-title labels that mark protection lines. An empty set means
	// nothing is classified as protection.
	ProtectionLabels []string

	// OnInvalid decides whether records failing normalization skip with a
	// warning or abort the run. Zero value is SkipInvalid.
	OnInvalid core.ValidationPolicy
}
