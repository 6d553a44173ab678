package maintenance

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func TestValidateDateRules(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		wantOK  bool
		wantMsg string
	}{
		{"well formed", "2023-10-05", true, ""},
		{"leap day", "2024-02-29", true, ""},
		{"non leap february 29", "2023-02-29", false, "not a valid calendar date"},
		{"february 30", "2023-02-30", false, "not a valid calendar date"},
		{"day zero", "2023-01-00", false, "not a valid calendar date"},
		{"month 13", "2023-13-01", false, "not a valid calendar date"},
		{"day-first form", "05/10/2023", false, "not in YYYY-MM-DD form"},
		{"missing padding", "2023-1-5", false, "not in YYYY-MM-DD form"},
		{"empty", "", false, "not in YYYY-MM-DD form"},
		{"letters", "20ab-01-01", false, "not in YYYY-MM-DD form"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Record{Date: tc.date, ServiceType: "Oil change", Cost: f64(10), Status: StatusCompleted}
			errs := r.Validate()
			if tc.wantOK {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no violations", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Validate() = %v, want exactly one violation", errs)
			}
			if !strings.Contains(errs[0].Error(), tc.wantMsg) {
				t.Fatalf("violation %q does not mention %q", errs[0], tc.wantMsg)
			}
		})
	}
}

func TestValidateTimeRules(t *testing.T) {
	cases := []struct {
		clock  string
		wantOK bool
	}{
		{"", true},
		{"00:00", true},
		{"23:59", true},
		{"09:30", true},
		{"24:00", false},
		{"10:60", false},
		{"9:30", false},
		{"0930", false},
		{"ab:cd", false},
	}
	for _, tc := range cases {
		r := Record{Date: "2030-06-15", TimeOfDay: tc.clock, ServiceType: "Inspection", Cost: f64(50), Status: StatusCompleted}
		errs := r.Validate()
		if tc.wantOK && len(errs) != 0 {
			t.Errorf("clock %q: Validate() = %v, want none", tc.clock, errs)
		}
		if !tc.wantOK {
			if len(errs) != 1 || !strings.Contains(errs[0].Error(), "clock time") {
				t.Errorf("clock %q: Validate() = %v, want one clock time violation", tc.clock, errs)
			}
		}
	}
}

func TestValidateServiceTypeAndStatus(t *testing.T) {
	r := Record{Date: "2030-06-15", ServiceType: "   ", Cost: f64(10), Status: Status("done")}
	errs := r.Validate()
	if len(errs) != 2 {
		t.Fatalf("Validate() = %v, want two violations", errs)
	}
	if !strings.Contains(errs[0].Error(), "service type is required") {
		t.Errorf("first violation = %q, want service type", errs[0])
	}
	if !strings.Contains(errs[1].Error(), `unknown status "done"`) {
		t.Errorf("second violation = %q, want unknown status", errs[1])
	}
}

func TestValidateOrdering(t *testing.T) {
	r := Record{Date: "someday", TimeOfDay: "99:99", ServiceType: "", Status: Status("paused")}
	errs := r.Validate()
	wantOrder := []string{"YYYY-MM-DD", "clock time", "service type", "cost is required", "unknown status"}
	if len(errs) != len(wantOrder) {
		t.Fatalf("Validate() returned %d violations %v, want %d", len(errs), errs, len(wantOrder))
	}
	for i, want := range wantOrder {
		if !strings.Contains(errs[i].Error(), want) {
			t.Errorf("violation[%d] = %q, want mention of %q", i, errs[i], want)
		}
	}
}

func TestCostRules(t *testing.T) {
	base := Record{Date: "2023-10-05", ServiceType: "Brakes", Status: StatusCompleted}

	missing := base
	if missing.IsValid() {
		t.Error("completed record without cost classified valid")
	}
	negative := base
	negative.Cost = f64(-1)
	if negative.IsValid() {
		t.Error("completed record with negative cost classified valid")
	}
	free := base
	free.Cost = f64(0)
	if !free.IsValid() {
		t.Errorf("zero-cost record classified invalid: %v", free.Violations())
	}
	nan := base
	nan.Cost = f64(math.NaN())
	if nan.IsValid() {
		t.Error("NaN cost classified valid")
	}
	inf := base
	inf.Cost = f64(math.Inf(1))
	if inf.IsValid() {
		t.Error("infinite cost classified valid")
	}
}

func TestScheduledCostExemption(t *testing.T) {
	r := Record{Date: "2030-06-15", ServiceType: "Inspection", Status: StatusScheduled}
	if len(r.Validate()) != 1 {
		t.Fatalf("Validate() = %v, want the raw cost violation", r.Validate())
	}
	if !r.IsValid() {
		t.Fatalf("scheduled record without cost classified invalid: %v", r.Violations())
	}

	// The exemption covers cost findings only; other violations still count.
	r.Date = "2023-02-30"
	if r.IsValid() {
		t.Error("scheduled record with impossible date classified valid")
	}

	// A negative cost is still a cost finding, so it is exempt too.
	r.Date = "2030-06-15"
	r.Cost = f64(-20)
	if !r.IsValid() {
		t.Errorf("scheduled record with negative cost classified invalid: %v", r.Violations())
	}
}

func TestViolationCategories(t *testing.T) {
	r := Record{Date: "2030-01-01", ServiceType: "Tires", Status: StatusCompleted}
	errs := r.Validate()
	if len(errs) != 1 {
		t.Fatalf("Validate() = %v, want one violation", errs)
	}
	if !errors.Is(errs[0], ErrValidation) {
		t.Error("cost finding does not match ErrValidation")
	}
	if !errors.Is(errs[0], ErrCost) {
		t.Error("cost finding does not match ErrCost")
	}

	r.Date = "never"
	for _, err := range r.Validate() {
		if strings.Contains(err.Error(), "date") && errors.Is(err, ErrCost) {
			t.Errorf("date finding %q matches ErrCost", err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("finding %q does not match ErrValidation", err)
		}
	}
}

func TestResolvedAt(t *testing.T) {
	r := Record{Date: "2026-03-01", ServiceType: "Oil change", Cost: f64(80), Status: StatusCompleted}
	at, ok := r.ResolvedAt()
	if !ok {
		t.Fatal("ResolvedAt() not ok for a valid date")
	}
	if want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local); !at.Equal(want) {
		t.Fatalf("ResolvedAt() = %v, want %v", at, want)
	}

	r.TimeOfDay = "09:45"
	at, ok = r.ResolvedAt()
	if !ok {
		t.Fatal("ResolvedAt() not ok with a valid time")
	}
	if want := time.Date(2026, time.March, 1, 9, 45, 0, 0, time.Local); !at.Equal(want) {
		t.Fatalf("ResolvedAt() = %v, want %v", at, want)
	}

	for _, bad := range []Record{
		{Date: "2023-02-30"},
		{Date: "2023-00-10"},
		{Date: "2026-03-01", TimeOfDay: "24:30"},
		{Date: "03/01/2026"},
	} {
		if _, ok := bad.ResolvedAt(); ok {
			t.Errorf("ResolvedAt() ok for date %q time %q", bad.Date, bad.TimeOfDay)
		}
	}
}

func TestPromote(t *testing.T) {
	rec := Record{Date: "2023-10-05", ServiceType: "Tires", Cost: f64(1200), Status: StatusCompleted}
	got, err := Promote(rec)
	if err != nil || got != rec {
		t.Fatalf("Promote(Record) = %+v, %v", got, err)
	}
	got, err = Promote(&rec)
	if err != nil || got != rec {
		t.Fatalf("Promote(*Record) = %+v, %v", got, err)
	}

	in := Input{Date: "2030-06-15", ServiceType: "Inspection", Status: "scheduled", TimeOfDay: "10:00"}
	got, err = Promote(in)
	if err != nil {
		t.Fatalf("Promote(Input): %v", err)
	}
	if got.Status != StatusScheduled || got.TimeOfDay != "10:00" {
		t.Fatalf("Promote(Input) = %+v", got)
	}

	m := map[string]interface{}{
		"date":        "2023-10-05",
		"serviceType": "Battery",
		"cost":        250.5,
		"status":      "completed",
	}
	got, err = Promote(m)
	if err != nil {
		t.Fatalf("Promote(map): %v", err)
	}
	if got.Cost == nil || *got.Cost != 250.5 {
		t.Fatalf("Promote(map) cost = %v", got.Cost)
	}

	m["cost"] = 100
	if got, err = Promote(m); err != nil || *got.Cost != 100 {
		t.Fatalf("Promote(map with int cost) = %+v, %v", got, err)
	}

	for _, bad := range []interface{}{
		42,
		"oil change",
		(*Record)(nil),
		map[string]interface{}{"date": 20231005},
		map[string]interface{}{"date": "2023-10-05", "cost": "expensive"},
	} {
		if _, err := Promote(bad); !errors.Is(err, ErrPromote) {
			t.Errorf("Promote(%v) error = %v, want ErrPromote", bad, err)
		}
	}
}
