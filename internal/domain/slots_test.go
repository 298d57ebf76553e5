package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 — понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestIsWorkingDay(t *testing.T) {
	for d := 0; d < 7; d++ {
		day := monday.AddDate(0, 0, d)
		want := day.Weekday() != time.Saturday && day.Weekday() != time.Sunday
		assert.Equal(t, want, IsWorkingDay(day), day.Weekday().String())
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 3, 2, 15, 42, 7, 123, time.UTC)
	assert.Equal(t, monday, StartOfDay(at))
}

func TestGenerateSlots(t *testing.T) {
	t.Run("full default horizon from early monday", func(t *testing.T) {
		now := monday.Add(8 * time.Hour) // 08:00, до начала рабочего дня
		slots := GenerateSlots(nil, DefaultGenerationPolicy(), now)

		// 14 дней с понедельника: 10 рабочих дней по 16 слотов (9-17, 30м)
		require.Len(t, slots, 160)

		first := slots[0]
		assert.Equal(t, monday.Add(9*time.Hour), first.Start)
		assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), first.End)
		assert.Equal(t, "Mar 2, 2026 at 9:00 AM", first.Label)

		last := slots[len(slots)-1]
		// Последний слот второй пятницы: 16:30-17:00
		friday2 := monday.AddDate(0, 0, 11)
		assert.Equal(t, friday2.Add(16*time.Hour+30*time.Minute), last.Start)
		assert.Equal(t, friday2.Add(17*time.Hour), last.End)
	})

	t.Run("slots are chronologically ordered", func(t *testing.T) {
		now := monday.Add(8 * time.Hour)
		slots := GenerateSlots(nil, DefaultGenerationPolicy(), now)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Start.Before(slots[i].Start))
		}
	})

	t.Run("mid-day now keeps slot in progress window", func(t *testing.T) {
		// 10:10: слоты 9:00 и 9:30 уже закончились, слот 10:00-10:30
		// еще не закончился и остается в выдаче
		now := monday.Add(10*time.Hour + 10*time.Minute)
		slots := GenerateSlots(nil, DefaultGenerationPolicy(), now)

		require.NotEmpty(t, slots)
		assert.Equal(t, monday.Add(10*time.Hour), slots[0].Start)
	})

	t.Run("busy intervals are excluded", func(t *testing.T) {
		now := monday.Add(8 * time.Hour)
		busy := []Interval{
			{Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
		}

		policy := DefaultGenerationPolicy()
		policy.HorizonDays = 1
		slots := GenerateSlots(busy, policy, now)

		// 16 слотов минус два, накрытых занятым часом
		require.Len(t, slots, 14)
		for _, s := range slots {
			assert.False(t, s.Interval.OverlapsAny(busy), "slot %s overlaps busy", s.Label)
		}
		// Граничащие слоты остаются
		assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[1].Start)
		assert.Equal(t, monday.Add(11*time.Hour), slots[2].Start)
	})

	t.Run("weekend days yield no slots", func(t *testing.T) {
		saturday := time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC)

		policy := DefaultGenerationPolicy()
		policy.HorizonDays = 2 // суббота и воскресенье
		assert.Empty(t, GenerateSlots(nil, policy, saturday))

		policy.HorizonDays = 3 // плюс понедельник
		slots := GenerateSlots(nil, policy, saturday)
		require.Len(t, slots, 16)
		assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), slots[0].Start)
	})

	t.Run("zero horizon yields empty sequence", func(t *testing.T) {
		policy := DefaultGenerationPolicy()
		policy.HorizonDays = 0
		slots := GenerateSlots(nil, policy, monday.Add(8*time.Hour))
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("equal working hours yield empty window", func(t *testing.T) {
		policy := DefaultGenerationPolicy()
		policy.WorkingHours = WorkingHours{StartHour: 9, EndHour: 9}
		assert.Empty(t, GenerateSlots(nil, policy, monday.Add(8*time.Hour)))
	})

	t.Run("no trailing partial slot", func(t *testing.T) {
		policy := GenerationPolicy{
			HorizonDays:         1,
			SlotDurationMinutes: 45,
			WorkingHours:        WorkingHours{StartHour: 9, EndHour: 10},
		}
		slots := GenerateSlots(nil, policy, monday.Add(8*time.Hour))

		// 9:00-9:45 помещается, 9:45-10:30 вышел бы за окно
		require.Len(t, slots, 1)
		assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
		assert.Equal(t, monday.Add(9*time.Hour+45*time.Minute), slots[0].End)
	})

	t.Run("label is deterministic", func(t *testing.T) {
		now := monday.Add(8 * time.Hour)
		policy := DefaultGenerationPolicy()
		policy.HorizonDays = 1

		first := GenerateSlots(nil, policy, now)
		second := GenerateSlots(nil, policy, now)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Label, second[i].Label)
		}
	})
}

func TestIsIntervalAvailable(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	candidate := Interval{
		Start: monday.Add(10 * time.Hour),
		End:   monday.Add(10*time.Hour + 30*time.Minute),
	}

	t.Run("free interval is available", func(t *testing.T) {
		assert.True(t, IsIntervalAvailable(candidate, nil, now))
	})

	t.Run("overlapping busy interval blocks", func(t *testing.T) {
		busy := []Interval{
			{Start: monday.Add(10*time.Hour + 15*time.Minute), End: monday.Add(11 * time.Hour)},
		}
		assert.False(t, IsIntervalAvailable(candidate, busy, now))
	})

	t.Run("adjacent busy intervals do not block", func(t *testing.T) {
		busy := []Interval{
			{Start: monday.Add(9*time.Hour + 30*time.Minute), End: monday.Add(10 * time.Hour)},
			{Start: monday.Add(10*time.Hour + 30*time.Minute), End: monday.Add(11 * time.Hour)},
		}
		assert.True(t, IsIntervalAvailable(candidate, busy, now))
	})

	t.Run("started interval is not available", func(t *testing.T) {
		assert.False(t, IsIntervalAvailable(candidate, nil, candidate.Start))
		assert.False(t, IsIntervalAvailable(candidate, nil, candidate.Start.Add(time.Minute)))
	})
}
