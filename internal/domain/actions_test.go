package domain

import (
	"errors"
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		input    string
		expected DecisionType
	}{
		{"MOVE", DecisionMove},
		{"move", DecisionMove},
		{"Turn", DecisionTurn},
		{"PICKUP", DecisionPickup},
		{"DROP", DecisionDrop},
		{"WAIT", DecisionWait},
		{"ATTACK", DecisionUnknown},
		{"", DecisionUnknown},
	}

	for _, tt := range tests {
		result := ParseDecision(tt.input)
		if result != tt.expected {
			t.Errorf("ParseDecision(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestDecisionType_String(t *testing.T) {
	tests := []struct {
		decision DecisionType
		expected string
	}{
		{DecisionMove, "MOVE"},
		{DecisionDrop, "DROP"},
		{DecisionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.decision.String(); got != tt.expected {
			t.Errorf("DecisionType(%d).String() = %q, want %q", tt.decision, got, tt.expected)
		}
	}
}

func TestParseDecisionStrict(t *testing.T) {
	if d, err := ParseDecisionStrict("wait"); err != nil || d != DecisionWait {
		t.Fatalf("ParseDecisionStrict(wait) = %v, %v", d, err)
	}
	if _, err := ParseDecisionStrict("JUMP"); !errors.Is(err, ErrUnknownDecision) {
		t.Fatalf("expected ErrUnknownDecision, got %v", err)
	}
}
