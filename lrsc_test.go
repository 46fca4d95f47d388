package atomx

import (
	"math"
	"testing"
)

func TestReservation_LostOnInterveningStore(t *testing.T) {
	var w int32 = 4
	r := loadReserved(&w)
	if r.v != 4 {
		t.Fatalf("reserved value = %d, want 4", r.v)
	}
	storeWord(&w, 9)
	if r.storeConditional(5) {
		t.Fatal("store-conditional succeeded after an intervening store")
	}
	if w != 9 {
		t.Fatalf("failed store-conditional changed the word to %d", w)
	}

	r = loadReserved(&w)
	if !r.storeConditional(10) {
		t.Fatal("uncontended store-conditional failed")
	}
	if w != 10 {
		t.Fatalf("word = %d, want 10", w)
	}
}

func TestNextWord(t *testing.T) {
	cases := []struct {
		name   string
		op     condOp
		old    int32
		a, u   int32
		want   int32
		wantOK bool
	}{
		{"addUnless/equal", addUnlessOp, 7, 3, 7, 7, false},
		{"addUnless/differs", addUnlessOp, 6, 3, 7, 9, true},
		{"incUnlessNegative/-1", incUnlessNegativeOp, -1, 0, 0, -1, false},
		{"incUnlessNegative/0", incUnlessNegativeOp, 0, 0, 0, 1, true},
		{"decUnlessPositive/1", decUnlessPositiveOp, 1, 0, 0, 1, false},
		{"decUnlessPositive/0", decUnlessPositiveOp, 0, 0, 0, -1, true},
		{"decIfPositive/0", decIfPositiveOp, 0, 0, 0, 0, false},
		{"decIfPositive/1", decIfPositiveOp, 1, 0, 0, 0, true},
		{"decIfPositive/min", decIfPositiveOp, math.MinInt32, 0, 0, math.MaxInt32, true},
		{"swap", swapOp, 1, 2, 0, 2, true},
		{"cas/match", casOp, 1, 2, 1, 2, true},
		{"cas/mismatch", casOp, 1, 2, 3, 1, false},
	}
	for _, c := range cases {
		got, ok := nextWord(c.op, c.old, c.a, c.u)
		if got != c.want || ok != c.wantOK {
			t.Errorf("%s: nextWord = (%d, %v), want (%d, %v)", c.name, got, ok, c.want, c.wantOK)
		}
	}
}

func TestCondUpdate_CommitAndAbort(t *testing.T) {
	var w int64 = -2
	old, committed := condUpdate(&w, incUnlessNegativeOp, 0, 0)
	if old != -2 || committed {
		t.Errorf("abort path = (%d, %v), want (-2, false)", old, committed)
	}
	if w != -2 {
		t.Errorf("abort path stored %d", w)
	}

	w = 2
	old, committed = condUpdate(&w, incUnlessNegativeOp, 0, 0)
	if old != 2 || !committed || w != 3 {
		t.Errorf("commit path = (%d, %v) value %d, want (2, true) value 3", old, committed, w)
	}
}

func TestCondUpdateMasked(t *testing.T) {
	var w int32 = 5
	old, committed := condUpdateMasked(&w, addUnlessOp, 10, 0)
	if old != 5 || !committed || w != 15 {
		t.Errorf("condUpdateMasked = (%d, %v) value %d", old, committed, w)
	}
	old, committed = condUpdateMasked(&w, addUnlessOp, 10, 15)
	if old != 15 || committed || w != 15 {
		t.Errorf("condUpdateMasked at sentinel = (%d, %v) value %d", old, committed, w)
	}
}

func TestCondUpdate_FallbackAfterBudget(t *testing.T) {
	savedBudget := retryBudget
	retryBudget = 1
	t.Cleanup(func() {
		retryBudget = savedBudget
		reservedHook = nil
	})
	ResetStats()

	var w int32 = 3
	var interfered bool
	reservedHook = func() {
		if !interfered {
			interfered = true
			storeWord(&w, 7)
		}
	}
	old, committed := condUpdate(&w, incUnlessNegativeOp, 0, 0)
	if !interfered {
		t.Fatal("store-conditional was not preceded by an intervening store")
	}
	if old != 7 || !committed || w != 8 {
		t.Fatalf("fallback = (%d, %v) value %d, want (7, true) value 8", old, committed, w)
	}

	if StatsEnabled {
		s := ReadStats()
		want := Stats{Commits: 1, LostReservations: 1, Fallbacks: 1}
		if s != want {
			t.Fatalf("stats = %+v, want %+v", s, want)
		}
	}

	w = -1
	interfered = false
	old, committed = condUpdateMasked(&w, incUnlessNegativeOp, 0, 0)
	if old != -1 || committed || w != -1 {
		t.Fatalf("masked abort = (%d, %v) value %d", old, committed, w)
	}
	if StatsEnabled && ReadStats().Aborts != 1 {
		t.Fatalf("masked abort not counted: %+v", ReadStats())
	}
}

func TestStats(t *testing.T) {
	if !StatsEnabled {
		if s := ReadStats(); s != (Stats{}) {
			t.Fatalf("stats moved without atomx_stats: %+v", s)
		}
		t.Skip("built without -tags=atomx_stats")
	}
	ResetStats()
	var x Int32
	x.Init(-1)
	x.IncUnlessNegative()
	x.Init(0)
	x.IncUnlessNegative()
	s := ReadStats()
	if s.Aborts != 1 || s.Commits != 1 {
		t.Fatalf("stats = %+v, want 1 abort and 1 commit", s)
	}
	ResetStats()
	if s := ReadStats(); s != (Stats{}) {
		t.Fatalf("stats after reset = %+v", s)
	}
}

func TestFences(t *testing.T) {
	var data [4]int
	var flag Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		for flag.LoadAcquire() == 0 {
		}
		for i, v := range data {
			if v != i+1 {
				t.Errorf("data[%d] = %d after acquire, want %d", i, v, i+1)
			}
		}
	}()
	for i := range data {
		data[i] = i + 1
	}
	flag.StoreRelease(1)
	<-done
	FullFence()
}
