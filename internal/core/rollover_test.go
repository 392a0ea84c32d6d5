package core

import "testing"

func TestCarryoverFromRemaining(t *testing.T) {
	tests := []struct {
		name      string
		rule      RolloverRule
		remaining Cents
		want      Cents
	}{
		{"reset with surplus", RolloverReset, 5000, 0},
		{"reset with deficit", RolloverReset, -5000, 0},
		{"reset with zero", RolloverReset, 0, 0},
		{"pos with surplus", RolloverPos, 5000, 5000},
		{"pos with deficit forgiven", RolloverPos, -5000, 0},
		{"pos with zero", RolloverPos, 0, 0},
		{"pos_neg with surplus", RolloverPosNeg, 5000, 5000},
		{"pos_neg with deficit", RolloverPosNeg, -5000, -5000},
		{"pos_neg with zero", RolloverPosNeg, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CarryoverFromRemaining(tt.rule, tt.remaining); got != tt.want {
				t.Errorf("CarryoverFromRemaining(%s, %d) = %d, want %d", tt.rule, tt.remaining, got, tt.want)
			}
		})
	}
}
