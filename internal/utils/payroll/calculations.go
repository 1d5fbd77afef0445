package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amountPlaces and fractionPlaces are the fixed decimal precisions for
// monetary amounts and deduction fractions.
const (
	amountPlaces   int32 = 2
	fractionPlaces int32 = 4
)

var hoursPerDay = decimal.NewFromInt(24)

// SessionFacts is the complete, validated input for one earnings computation.
// The work-log service builds it from a create request, or from the merge of
// an update request onto the persisted row, before calling Compute.
type SessionFacts struct {
	Type domain.WorkLogType

	// Hourly (particular) inputs. DurationHours wins when positive; otherwise
	// the duration is derived from StartTime/EndTime.
	DurationHours *decimal.Decimal
	StartTime     *string // "HH:MM"
	EndTime       *string // "HH:MM"

	// Multi-day (tutorial) inputs, inclusive on both ends.
	StartDate *time.Time
	EndDate   *time.Time

	HasCoordination bool
	HasNight        bool

	// ManualAmount bypasses rate-based computation entirely when set.
	ManualAmount *decimal.Decimal

	// IsGrossOverride overrides the rate record's gross flag for this session.
	IsGrossOverride *bool
}

// EarningsResult holds the four computed outputs of a work session plus the
// gross flag that was effective during computation.
type EarningsResult struct {
	Net           decimal.Decimal
	Gross         decimal.Decimal
	RateApplied   decimal.Decimal
	DurationHours decimal.Decimal
	IsGross       bool
}

// Compute derives the earnings for one work session. It is a pure function:
// same rate, facts and company default always produce the same result.
//
// Policy, in order:
//  1. A manual amount is used verbatim as both net and gross; no deductions.
//  2. Base amount: hourly rate x duration for particular sessions (duration
//     derived from clock times with a midnight wrap when not supplied), daily
//     rate x inclusive day count for tutorial sessions.
//  3. Flat coordination/night supplements are added when flagged.
//  4. The result so far is the gross amount, recorded verbatim.
//  5. When the effective gross flag is set and the gross amount is positive,
//     net = gross x (1 - (ss + irpf + extra)), where ss is the rate-level
//     override when present, else the company default.
//  6. Otherwise net equals gross.
func Compute(rate domain.PayRate, facts SessionFacts, companyDefaultSS decimal.Decimal) (EarningsResult, error) {
	if facts.ManualAmount != nil {
		amount := facts.ManualAmount.Round(amountPlaces)
		duration := decimal.Zero
		if facts.DurationHours != nil {
			duration = facts.DurationHours.Round(amountPlaces)
		}
		return EarningsResult{
			Net:           amount,
			Gross:         amount,
			RateApplied:   decimal.Zero,
			DurationHours: duration,
			IsGross:       true,
		}, nil
	}

	isGross := rate.IsGross
	if facts.IsGrossOverride != nil {
		isGross = *facts.IsGrossOverride
	}

	var base, rateApplied, duration decimal.Decimal
	var err error

	switch facts.Type {
	case domain.WorkLogParticular:
		rateApplied = rate.HourlyRate
		duration, err = hourlyDuration(facts)
		if err != nil {
			return EarningsResult{}, err
		}
		base = duration.Mul(rate.HourlyRate)
	case domain.WorkLogTutorial:
		rateApplied = rate.DailyRate
		duration, err = tutorialDuration(facts)
		if err != nil {
			return EarningsResult{}, err
		}
		base = duration.Mul(rate.DailyRate)
	default:
		return EarningsResult{}, apperrors.NewValidationFailedError(fmt.Sprintf("unknown work log type %q", facts.Type))
	}

	if facts.HasCoordination {
		base = base.Add(rate.CoordinationRate)
	}
	if facts.HasNight {
		base = base.Add(rate.NightRate)
	}

	gross := base.Round(amountPlaces)
	net := gross

	if isGross && gross.IsPositive() {
		total := totalDeductionFraction(rate, companyDefaultSS)
		if total.IsPositive() {
			net = gross.Mul(decimal.NewFromInt(1).Sub(total)).Round(amountPlaces)
		}
	}

	return EarningsResult{
		Net:           net,
		Gross:         gross,
		RateApplied:   rateApplied,
		DurationHours: duration.Round(amountPlaces),
		IsGross:       isGross,
	}, nil
}

// totalDeductionFraction sums the applicable deduction fractions. The SS
// fraction comes from the rate record when overridden there, else from the
// company default. No clamping happens here: rows configured before the
// input-boundary validation existed keep computing the same results.
func totalDeductionFraction(rate domain.PayRate, companyDefaultSS decimal.Decimal) decimal.Decimal {
	ss := companyDefaultSS
	if rate.DeductionSS != nil {
		ss = *rate.DeductionSS
	}
	return ss.Add(rate.DeductionIRPF).Add(rate.DeductionExtra).Round(fractionPlaces)
}

// hourlyDuration returns the effective duration in hours for a particular
// session. A supplied positive duration wins; otherwise it is derived from
// the clock times, wrapping by 24h for sessions that cross midnight.
func hourlyDuration(facts SessionFacts) (decimal.Decimal, error) {
	if facts.DurationHours != nil {
		if facts.DurationHours.IsNegative() {
			return decimal.Zero, apperrors.NewValidationFailedError("duration hours must not be negative")
		}
		if facts.DurationHours.IsPositive() {
			return *facts.DurationHours, nil
		}
	}

	if facts.StartTime == nil || facts.EndTime == nil {
		return decimal.Zero, apperrors.NewValidationFailedError("hourly log requires a duration or start and end times")
	}

	start, err := parseClock(*facts.StartTime)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := parseClock(*facts.EndTime)
	if err != nil {
		return decimal.Zero, err
	}

	diff := end.Sub(start)
	if diff.IsNegative() {
		// Overnight session crossing midnight.
		diff = diff.Add(hoursPerDay)
	}
	return diff, nil
}

// tutorialDuration returns the inclusive day count of a tutorial session.
// A single-day session (start == end) counts as one day.
func tutorialDuration(facts SessionFacts) (decimal.Decimal, error) {
	if facts.StartDate == nil || facts.EndDate == nil {
		return decimal.Zero, apperrors.NewValidationFailedError("tutorial log requires start and end dates")
	}
	start := truncateToDay(*facts.StartDate)
	end := truncateToDay(*facts.EndDate)
	if end.Before(start) {
		return decimal.Zero, apperrors.NewValidationFailedError("end date must not be before start date")
	}
	days := int64(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClock converts an "HH:MM" string into fractional hours.
func parseClock(s string) (decimal.Decimal, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("invalid clock time %q, expected HH:MM", s))
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("invalid hour in clock time %q", s))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("invalid minute in clock time %q", s))
	}
	return decimal.NewFromInt(int64(hour)).Add(decimal.NewFromInt(int64(minute)).Div(decimal.NewFromInt(60))), nil
}
