package seasons

import "errors"

var (
	// ErrUnknownSport indicates the sport identifier is not in the table.
	ErrUnknownSport = errors.New("unknown sport")
	// ErrUnknownSeason indicates the season id is absent for a known sport.
	ErrUnknownSeason = errors.New("unknown season")
	// ErrInvalidDateRange indicates boundary dates are not monotonically ordered.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInsufficientData indicates not enough seasons exist for analysis.
	ErrInsufficientData = errors.New("insufficient data")
)
