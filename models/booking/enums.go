package booking

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Helper methods for BookingStatus
func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusApproved, BookingStatusPaid, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the booking can no longer change state.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusPaid || bs == BookingStatusCancelled
}

// CanTransitionTo returns true if the status may move to next.
// The only legal transitions are approved->paid and approved->cancelled.
func (bs BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if bs != BookingStatusApproved {
		return false
	}
	return next == BookingStatusPaid || next == BookingStatusCancelled
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusApproved,
		BookingStatusPaid,
		BookingStatusCancelled,
	}
}

// Duration is the billing period chosen at booking time.
type Duration string

const (
	DurationSemester Duration = "semester"
	DurationAnnual   Duration = "annual"
)

func (d Duration) String() string {
	return string(d)
}

func (d Duration) IsValid() bool {
	return d == DurationSemester || d == DurationAnnual
}

// MonthCount maps the duration to its fixed number of billed months.
func (d Duration) MonthCount() int {
	if d == DurationAnnual {
		return 10
	}
	return 5
}
