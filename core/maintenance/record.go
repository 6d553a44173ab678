// Package maintenance implements the garage's service record engine: field
// validation, status-aware classification, timestamp resolution and display
// formatting.
package maintenance

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Status says whether a service event already happened or is still planned.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusScheduled Status = "scheduled"
)

const (
	// DateLayout is the storage form of record dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the optional clock component of scheduled records.
	TimeLayout = "15:04"
	// DisplayDateLayout is the day-first form used on rendered surfaces.
	DisplayDateLayout = "02/01/2006"
)

// Record is one completed or scheduled service event of a vehicle. Dates are
// kept in their textual storage form; ResolvedAt turns them into concrete
// timestamps on demand. Cost is a pointer so "not informed" survives as nil
// instead of collapsing to zero.
type Record struct {
	Date        string   `json:"date"`
	ServiceType string   `json:"serviceType"`
	Cost        *float64 `json:"cost,omitempty"`
	Description string   `json:"description,omitempty"`
	TimeOfDay   string   `json:"time,omitempty"`
	Status      Status   `json:"status"`
}

var (
	// ErrValidation matches every violation reported by Validate.
	ErrValidation = errors.New("maintenance: invalid record")
	// ErrCost matches only the violations concerning the cost field.
	ErrCost = errors.New("maintenance: invalid record cost")
)

// ValidationError is a single rule violation found by Validate. Violations
// of the cost rules are marked so status classification can exempt them for
// scheduled records.
type ValidationError struct {
	Msg  string
	Cost bool
}

func (e *ValidationError) Error() string { return e.Msg }

// Is lets errors.Is match the category sentinels.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrCost:
		return e.Cost
	}
	return false
}

// Validate checks every field rule and returns one error per violation, in
// field order. An empty result means the record is well formed for a
// completed record; scheduled records additionally tolerate cost violations,
// which Violations and IsValid account for.
func (r Record) Validate() []error {
	var errs []error
	if year, month, day, ok := splitDate(r.Date); !ok {
		errs = append(errs, &ValidationError{Msg: fmt.Sprintf("date %q is not in YYYY-MM-DD form", r.Date)})
	} else if !calendarDate(year, month, day) {
		errs = append(errs, &ValidationError{Msg: fmt.Sprintf("date %q is not a valid calendar date", r.Date)})
	}
	if r.TimeOfDay != "" {
		if _, _, ok := splitClock(r.TimeOfDay); !ok {
			errs = append(errs, &ValidationError{Msg: fmt.Sprintf("time %q is not a valid HH:MM clock time", r.TimeOfDay)})
		}
	}
	if strings.TrimSpace(r.ServiceType) == "" {
		errs = append(errs, &ValidationError{Msg: "service type is required"})
	}
	switch {
	case r.Cost == nil:
		errs = append(errs, &ValidationError{Msg: "cost is required", Cost: true})
	case math.IsNaN(*r.Cost) || math.IsInf(*r.Cost, 0):
		errs = append(errs, &ValidationError{Msg: "cost must be a finite number", Cost: true})
	case *r.Cost < 0:
		errs = append(errs, &ValidationError{Msg: "cost must not be negative", Cost: true})
	}
	if r.Status != StatusCompleted && r.Status != StatusScheduled {
		errs = append(errs, &ValidationError{Msg: fmt.Sprintf("unknown status %q", string(r.Status))})
	}
	return errs
}

// Violations returns the rule violations that count against the record given
// its status. A scheduled service legitimately has no cost yet, so cost
// findings are dropped for scheduled records; completed records keep the full
// list.
func (r Record) Violations() []error {
	errs := r.Validate()
	if r.Status != StatusScheduled || len(errs) == 0 {
		return errs
	}
	kept := errs[:0]
	for _, err := range errs {
		if errors.Is(err, ErrCost) {
			continue
		}
		kept = append(kept, err)
	}
	return kept
}

// IsValid reports whether the record classifies as valid for its status.
func (r Record) IsValid() bool { return len(r.Violations()) == 0 }

// ResolvedAt decodes the record's date and optional time into a concrete
// local timestamp. The second return is false when the parts do not name a
// real calendar moment.
func (r Record) ResolvedAt() (time.Time, bool) {
	year, month, day, ok := splitDate(r.Date)
	if !ok {
		return time.Time{}, false
	}
	var hour, minute int
	if r.TimeOfDay != "" {
		hour, minute, ok = splitClock(r.TimeOfDay)
		if !ok {
			return time.Time{}, false
		}
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	// time.Date normalises out-of-range parts instead of failing, turning
	// February 30th into March 1st or 2nd. Decompose the result and require
	// every part to read back unchanged, so such dates report as
	// unresolvable rather than silently shifted.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, false
	}
	return t, true
}

// splitDate splits a strict YYYY-MM-DD string into numeric parts. It checks
// shape only; calendar validity is the caller's concern.
func splitDate(s string) (year, month, day int, ok bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, false
	}
	ys, ms, ds := s[:4], s[5:7], s[8:]
	if !digits(ys) || !digits(ms) || !digits(ds) {
		return 0, 0, 0, false
	}
	year, _ = strconv.Atoi(ys)
	month, _ = strconv.Atoi(ms)
	day, _ = strconv.Atoi(ds)
	return year, month, day, true
}

// splitClock splits a strict HH:MM string and rejects out-of-range values.
func splitClock(s string) (hour, minute int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	hs, ms := s[:2], s[3:]
	if !digits(hs) || !digits(ms) {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(hs)
	minute, _ = strconv.Atoi(ms)
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func calendarDate(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && t.Month() == time.Month(month) && t.Day() == day
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ErrPromote reports input that cannot be turned into a Record at all. It is
// distinct from validation: promotion failures are caller bugs, not bad user
// data.
var ErrPromote = errors.New("maintenance: value is not promotable to a record")

// Input carries raw field values for one record before promotion, for
// callers that collect fields individually.
type Input struct {
	Date        string   `json:"date"`
	ServiceType string   `json:"serviceType"`
	Cost        *float64 `json:"cost"`
	Description string   `json:"description"`
	TimeOfDay   string   `json:"time"`
	Status      string   `json:"status"`
}

func (in Input) record() Record {
	return Record{
		Date:        in.Date,
		ServiceType: in.ServiceType,
		Cost:        in.Cost,
		Description: in.Description,
		TimeOfDay:   in.TimeOfDay,
		Status:      Status(in.Status),
	}
}

// Promote converts v into a Record. Accepted shapes are Record, *Record,
// Input, *Input and a decoded JSON object keyed like the wire form. Anything
// else reports ErrPromote.
func Promote(v interface{}) (Record, error) {
	switch x := v.(type) {
	case Record:
		return x, nil
	case *Record:
		if x == nil {
			return Record{}, fmt.Errorf("%w: nil *Record", ErrPromote)
		}
		return *x, nil
	case Input:
		return x.record(), nil
	case *Input:
		if x == nil {
			return Record{}, fmt.Errorf("%w: nil *Input", ErrPromote)
		}
		return x.record(), nil
	case map[string]interface{}:
		return fromMap(x)
	default:
		return Record{}, fmt.Errorf("%w: unsupported type %T", ErrPromote, v)
	}
}

func fromMap(m map[string]interface{}) (Record, error) {
	var r Record
	var err error
	if r.Date, err = stringField(m, "date"); err != nil {
		return Record{}, err
	}
	if r.ServiceType, err = stringField(m, "serviceType"); err != nil {
		return Record{}, err
	}
	if r.Description, err = stringField(m, "description"); err != nil {
		return Record{}, err
	}
	if r.TimeOfDay, err = stringField(m, "time"); err != nil {
		return Record{}, err
	}
	status, err := stringField(m, "status")
	if err != nil {
		return Record{}, err
	}
	r.Status = Status(status)
	if v, ok := m["cost"]; ok && v != nil {
		switch c := v.(type) {
		case float64:
			r.Cost = &c
		case int:
			f := float64(c)
			r.Cost = &f
		case json.Number:
			f, err := c.Float64()
			if err != nil {
				return Record{}, fmt.Errorf("%w: cost %q is not a number", ErrPromote, c.String())
			}
			r.Cost = &f
		default:
			return Record{}, fmt.Errorf("%w: cost is %T, want a number", ErrPromote, v)
		}
	}
	return r, nil
}

func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrPromote, key, v)
	}
	return s, nil
}
