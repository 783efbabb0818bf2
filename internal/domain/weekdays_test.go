package domain

import (
	"testing"
	"time"
)

func TestWeekdaysBitSet(t *testing.T) {
	days := Monday.With(Wednesday).With(Friday)

	if !days.Has(Monday) || !days.Has(Friday) {
		t.Fatalf("expected Monday and Friday set in %b", days)
	}
	if days.Has(Tuesday) {
		t.Fatalf("Tuesday should not be set in %b", days)
	}
	if !days.Has(Monday | Friday) {
		t.Fatalf("combined flag check failed for %b", days)
	}
	if days.Has(Monday | Tuesday) {
		t.Fatalf("partial match should not satisfy Has")
	}
}

func TestWeekdaysIncludes(t *testing.T) {
	days := Sunday.With(Saturday)

	if !days.Includes(time.Sunday) || !days.Includes(time.Saturday) {
		t.Fatalf("weekend days should be included in %b", days)
	}
	if days.Includes(time.Wednesday) {
		t.Fatalf("Wednesday should not be included in %b", days)
	}

	if !AllWeekdays.Includes(time.Thursday) {
		t.Fatalf("AllWeekdays should include every day")
	}
	var none Weekdays
	if none.Includes(time.Monday) {
		t.Fatalf("zero set should include nothing")
	}
}
