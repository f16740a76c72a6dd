package models

// Session identifies the family member performing an operation.
// It is passed explicitly to anything that attributes records to a person.
type Session struct {
	// Member is the family member's name as configured.
	Member string

	// ExpiresAt is the Unix timestamp after which the session token is rejected.
	ExpiresAt int64
}
