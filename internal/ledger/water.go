package ledger

import "fmt"

// Water tracks intake for today only. There is no background reset: a
// counter stamped with an earlier day reads as zero, and the first
// adjustment after midnight starts fresh from zero. The previous day's
// final total is not retained.

// Water returns the effective counter value for today.
func (l *Ledger) Water() (int, error) {
	level, err := l.store.GetWater(l.ownerID)
	if err != nil {
		return 0, err
	}
	if level == nil || level.AsOfDay != DayKeyOf(l.now()) {
		return 0, nil
	}
	return level.Value, nil
}

// AdjustWater applies delta (ml, may be negative) to today's counter
// and persists the result. The value never goes below zero.
func (l *Ledger) AdjustWater(delta int) (int, error) {
	current, err := l.Water()
	if err != nil {
		return 0, err
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	today := DayKeyOf(l.now())
	if err := l.store.SetWater(l.ownerID, next, today); err != nil {
		return next, fmt.Errorf("save water: %w", err)
	}
	return next, nil
}
