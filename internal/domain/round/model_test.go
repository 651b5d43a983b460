package round

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{from: StatusPending, to: StatusActive, want: true},
		{from: StatusActive, to: StatusFinished, want: true},
		{from: StatusPending, to: StatusFinished, want: false},
		{from: StatusActive, to: StatusPending, want: false},
		{from: StatusFinished, to: StatusPending, want: false},
		{from: StatusFinished, to: StatusActive, want: false},
		{from: StatusFinished, to: StatusFinished, want: false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(StatusPending, StatusActive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateTransition(StatusFinished, StatusActive)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRoundValidate(t *testing.T) {
	r := Round{ID: "r1", Name: "Rodada 1", Status: StatusPending}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.MarketOpen() {
		t.Fatalf("expected pending round to have open market")
	}

	r.Status = "closed"
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	r.Status = StatusActive
	if r.MarketOpen() {
		t.Fatalf("expected active round to have closed market")
	}
}
