package services

import (
	"testing"
	"time"
)

func TestHolidayService_Weekend(t *testing.T) {
	svc := NewHolidayService()

	// 2026-08-29 is a Saturday
	saturday := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if svc.IsWorkday(saturday, "US") {
		t.Error("Saturday should not be a workday in US")
	}
	if svc.IsWorkday(saturday, "NONE") {
		t.Error("Saturday should not be a workday with weekdays-only calendar")
	}
}

func TestHolidayService_PublicHoliday(t *testing.T) {
	svc := NewHolidayService()

	// Independence Day 2025 falls on a Friday
	july4 := time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)
	if svc.IsWorkday(july4, "US") {
		t.Error("July 4th should not be a workday in US")
	}
	if !svc.IsWorkday(july4, "NONE") {
		t.Error("July 4th is a weekday; weekdays-only calendar should treat it as a workday")
	}
}

func TestHolidayService_RegularWeekday(t *testing.T) {
	svc := NewHolidayService()

	// 2026-08-26 is a Wednesday with no US holiday
	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	if !svc.IsWorkday(wednesday, "US") {
		t.Error("a regular Wednesday should be a workday in US")
	}
}

func TestHolidayService_UnknownCountryFallsBack(t *testing.T) {
	svc := NewHolidayService()

	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	if !svc.IsWorkday(wednesday, "XX") {
		t.Error("unknown country should fall back to weekday check")
	}

	sunday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if svc.IsWorkday(sunday, "XX") {
		t.Error("unknown country should still exclude weekends")
	}
}

func TestHolidayService_IsHoliday(t *testing.T) {
	svc := NewHolidayService()

	july4 := time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC)
	if !svc.IsHoliday(july4, "US") {
		t.Error("IsHoliday should be the inverse of IsWorkday")
	}
}
