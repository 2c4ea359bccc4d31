package models

import (
	"testing"

	"github.com/julianstephens/almanac/internal/utils"
)

func dayPtr(d utils.Day) *utils.Day {
	return &d
}

func TestHabitFreezeWindow(t *testing.T) {
	from := utils.NewDay(2024, 3, 10)
	to := utils.NewDay(2024, 3, 12)

	tests := []struct {
		name   string
		habit  Habit
		wantOK bool
	}{
		{
			name:   "not frozen",
			habit:  Habit{IsFrozen: false, FrozenFrom: dayPtr(from), FrozenTo: dayPtr(to)},
			wantOK: false,
		},
		{
			name:   "frozen with valid window",
			habit:  Habit{IsFrozen: true, FrozenFrom: dayPtr(from), FrozenTo: dayPtr(to)},
			wantOK: true,
		},
		{
			name:   "frozen missing end",
			habit:  Habit{IsFrozen: true, FrozenFrom: dayPtr(from)},
			wantOK: false,
		},
		{
			name:   "frozen missing start",
			habit:  Habit{IsFrozen: true, FrozenTo: dayPtr(to)},
			wantOK: false,
		},
		{
			name:   "reversed window",
			habit:  Habit{IsFrozen: true, FrozenFrom: dayPtr(to), FrozenTo: dayPtr(from)},
			wantOK: false,
		},
		{
			name:   "single day window",
			habit:  Habit{IsFrozen: true, FrozenFrom: dayPtr(from), FrozenTo: dayPtr(from)},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := tt.habit.FreezeWindow()
			if ok != tt.wantOK {
				t.Errorf("FreezeWindow() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestHabitIsFrozenOn(t *testing.T) {
	habit := Habit{
		IsFrozen:   true,
		FrozenFrom: dayPtr(utils.NewDay(2024, 3, 10)),
		FrozenTo:   dayPtr(utils.NewDay(2024, 3, 12)),
	}

	tests := []struct {
		day  utils.Day
		want bool
	}{
		{utils.NewDay(2024, 3, 9), false},
		{utils.NewDay(2024, 3, 10), true},
		{utils.NewDay(2024, 3, 11), true},
		{utils.NewDay(2024, 3, 12), true},
		{utils.NewDay(2024, 3, 13), false},
	}

	for _, tt := range tests {
		if got := habit.IsFrozenOn(tt.day); got != tt.want {
			t.Errorf("IsFrozenOn(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
