package chrono

import (
	"time"
	// Asia/Seoul must load on hosts without a zoneinfo database
	_ "time/tzdata"
)

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location().
	Now() time.Time
	Location() *time.Location
}

// StandardImpl is the system clock, pinned to Asia/Seoul since every date the
// portal deals with is a Korean calendar date.
type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always reports the same instant, for tests. Zone defaults to
// the location of Time.
type FixedImpl struct {
	Time time.Time
	Zone *time.Location
}

func (f FixedImpl) Now() time.Time {
	return f.Time.In(f.Location())
}

func (f FixedImpl) Location() *time.Location {
	if f.Zone != nil {
		return f.Zone
	}
	return f.Time.Location()
}

// Tomorrow returns the calendar day after now in the API's location.
func Tomorrow(api API) time.Time {
	return api.Now().In(api.Location()).AddDate(0, 0, 1)
}
