package commands

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add Lisinopril dose=10mg at=08:00", TypeAdd},
		{"take Lisinopril", TypeTake},
		{"dismiss Metformin", TypeDismiss},
		{"/meal breakfast oatmeal toast", TypeMeal},
		{"/water 2", TypeWater},
		{"/summary", TypeSummary},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddFullForm(t *testing.T) {
	cmd, err := Parse("/add Vitamin D dose=1000IU at=08:00,20:00 days=monday,friday")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{
		Name:   "Vitamin D",
		Dosage: "1000IU",
		Times:  []string{"08:00", "20:00"},
		Days:   []string{"monday", "friday"},
	}
	if !reflect.DeepEqual(*cmd.Add, want) {
		t.Fatalf("add args = %+v, want %+v", *cmd.Add, want)
	}
}

func TestParseAddDailyMeansEveryDay(t *testing.T) {
	cmd, err := Parse("/add Metformin dose=500mg at=12:00 days=daily")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cmd.Add.Days) != 0 {
		t.Fatalf("days = %v, want empty for daily", cmd.Add.Days)
	}
}

func TestParseAddRejectsBadInput(t *testing.T) {
	cases := []string{
		"/add",
		"/add dose=10mg at=08:00",
		"/add Lisinopril dose=10mg",
		"/add Lisinopril at=8am",
		"/add Lisinopril at=08:00 days=someday",
		"/add Lisinopril at=08:00 trailing",
		"/add Lisinopril size=big at=08:00",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseWaterDefaultsToOneGlass(t *testing.T) {
	cmd, err := Parse("/water")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Water.Glasses != 1 {
		t.Fatalf("glasses = %d, want 1", cmd.Water.Glasses)
	}
}

func TestParseWaterRejectsNonPositive(t *testing.T) {
	for _, in := range []string{"/water zero", "/water 0", "/water -3"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("parse %q: expected error", in)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/", "/   "} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/take Lisinopril 10mg")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Take: func(a TakeArgs) (Result, error) {
			called = true
			if a.Name != "Lisinopril 10mg" {
				t.Fatalf("unexpected name: %q", a.Name)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed: called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("/summary")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler missing error, got %v", err)
	}
}
