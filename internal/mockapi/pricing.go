package mockapi

import (
	"fmt"
	"time"
)

// Pricing is a vehicle's tiered rental price in VND.
type Pricing struct {
	PerDay     int64
	PerWeek    int64
	PerMonth   int64
	PerKwh     int64
	DepositVND int64
}

// DateDifference is the span between two calendar dates, both ends included.
type DateDifference struct {
	Months int
	Days   int
}

// RentalCostBreakdown splits a base rental fee into its tiers.
type RentalCostBreakdown struct {
	Months     int
	Weeks      int
	Days       int
	MonthsCost int64
	WeeksCost  int64
	DaysCost   int64
	TotalCost  int64
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == time.April || month == time.June || month == time.September || month == time.November {
		return 30
	}
	return 31
}

// CalculateDateDifference computes the difference between the calendar dates
// of start and end, counting both ends. Whole months are stepped from the start
// date, clamped to the end of shorter months, and the remainder is days.
func CalculateDateDifference(start, end time.Time) (DateDifference, error) {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		return DateDifference{}, fmt.Errorf("end date must be >= start date")
	}

	// exclusive bound so the end date itself is counted
	until := to.AddDate(0, 0, 1)

	months := 0
	for !addMonthsClamped(from, months+1).After(until) {
		months++
	}
	days := int(until.Sub(addMonthsClamped(from, months)).Hours() / 24)

	return DateDifference{Months: months, Days: days}, nil
}

// addMonthsClamped moves t forward n calendar months, keeping its day of month
// unless the target month is shorter.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// RentalCost prices a rental on the day tier: full months, then full weeks,
// then leftover days. At least one day is always charged.
func RentalCost(start, end time.Time, p Pricing) (RentalCostBreakdown, error) {
	diff, err := CalculateDateDifference(start, end)
	if err != nil {
		return RentalCostBreakdown{}, err
	}
	if diff.Months == 0 && diff.Days == 0 {
		diff.Days = 1
	}

	const daysPerWeek = 7
	weeks := diff.Days / daysPerWeek
	days := diff.Days % daysPerWeek

	b := RentalCostBreakdown{
		Months:     diff.Months,
		Weeks:      weeks,
		Days:       days,
		MonthsCost: int64(diff.Months) * p.PerMonth,
		WeeksCost:  int64(weeks) * p.PerWeek,
		DaysCost:   int64(days) * p.PerDay,
	}
	b.TotalCost = b.MonthsCost + b.WeeksCost + b.DaysCost
	return b, nil
}
