package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrJobAlreadyGenerated    = errors.New("marketplace job already generated for campaign")
	ErrCampaignLocked         = errors.New("campaign is locked after job generation")
	ErrMalformedIdentifier    = errors.New("malformed question identifier token")
	ErrMarketplaceUnavailable = errors.New("crowd marketplace is unavailable")
	ErrAnswerDuplicate        = errors.New("answer already recorded")
)

// ValidationError reports the specific out-of-range or missing campaign field.
// It is surfaced to the operator before any persistence happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
