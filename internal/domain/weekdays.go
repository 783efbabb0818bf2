package domain

import "time"

// Weekdays is a bit set of days of the week, used for labourer availability
// and job working days.
type Weekdays uint8

const (
	Sunday Weekdays = 1 << iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AllWeekdays has every day set.
const AllWeekdays = Sunday | Monday | Tuesday | Wednesday | Thursday | Friday | Saturday

// Has reports whether every day in flag is set.
func (w Weekdays) Has(flag Weekdays) bool {
	return w&flag == flag
}

// With returns w with flag added.
func (w Weekdays) With(flag Weekdays) Weekdays {
	return w | flag
}

// Includes reports whether the given calendar weekday is set.
func (w Weekdays) Includes(day time.Weekday) bool {
	return w.Has(1 << uint(day))
}
