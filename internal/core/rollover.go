package core

// CarryoverFromRemaining maps a rollover rule and the remaining balance
// at period end to the carryover for the next period. This is the only
// place rollover semantics live; cadence never enters into it.
//
//	reset:   nothing carries forward.
//	pos:     unspent money carries forward, overspend is forgiven.
//	pos_neg: both surplus and deficit carry forward.
func CarryoverFromRemaining(rule RolloverRule, remaining Cents) Cents {
	switch rule {
	case RolloverReset:
		return 0
	case RolloverPos:
		return Max(0, remaining)
	case RolloverPosNeg:
		return remaining
	default:
		return 0
	}
}
