package entity

import "time"

// Office is the top-level organizational unit owning regions and users.
type Office struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Geo is a geographic subdivision under an office, the unit of plan/fact
// reporting. Name is unique within its office.
type Geo struct {
	ID       int64
	Name     string
	OfficeID int64
}

// User is a registered manager. A user belongs to one office and implicitly
// reports for every geo of that office.
type User struct {
	ID          int64
	SlackUserID string
	Name        string
	OfficeID    int64
	CreatedAt   time.Time
}

// Report is a daily planned-profit entry for one geo. One per geo per day.
type Report struct {
	ID            int64
	OfficeID      int64
	GeoID         int64
	Date          time.Time
	AmountPlanned int64
}

// Fact is a monthly actual-profit entry for one geo. Month is always the
// first day of the month. One per geo per month.
type Fact struct {
	ID         int64
	GeoID      int64
	Month      time.Time
	AmountFact int64
}

// PendingPrompt correlates an outbound prompt with the reply it expects,
// so inbound replies route to the daily or monthly handler without guessing
// from message text.
type PendingPrompt struct {
	ID          int64
	SlackUserID string
	Kind        string
	SentAt      time.Time
}

// Recipient is one row of the dispatch query: a user joined with their office
// and all geos of that office.
type Recipient struct {
	User   *User
	Office *Office
	Geos   []*Geo
}

// SummaryRow is one line of the daily admin digest: total planned amount for
// one geo on one day.
type SummaryRow struct {
	OfficeName   string
	GeoName      string
	TotalPlanned int64
}

// DeltaRow is one line of the monthly admin report: planned total vs actual
// for one geo.
type DeltaRow struct {
	OfficeName   string
	GeoName      string
	TotalPlanned int64
	AmountFact   int64
}

// Delta returns actual minus planned.
func (r *DeltaRow) Delta() int64 {
	return r.AmountFact - r.TotalPlanned
}
