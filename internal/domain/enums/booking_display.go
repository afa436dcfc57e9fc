package enums

// BookingDisplay is derived from the booking dates at read time,
// it is never persisted.
type BookingDisplay string

const (
	BookingDisplayUpcoming BookingDisplay = "upcoming"
	BookingDisplayActive   BookingDisplay = "active"
	BookingDisplayExpired  BookingDisplay = "expired"
)
