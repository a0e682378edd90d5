package store

import (
	"errors"
	"math"
	"sync"
	"testing"

	"towerweight/internal/model"
)

func result(total float64) model.ResolvedResult {
	return model.ResolvedResult{Tower: model.TowerNS5, BodyExtension: model.BeE0, Total: total}
}

// TestNewLedger 测试创建台账
func TestNewLedger(t *testing.T) {
	l := NewLedger()
	if l == nil {
		t.Fatal("NewLedger() returned nil")
	}
	if l.Len() != 0 {
		t.Errorf("New ledger should be empty, got %d entries", l.Len())
	}
	if l.GrandTotal() != 0 {
		t.Errorf("GrandTotal of empty ledger = %v, want 0", l.GrandTotal())
	}
}

// TestAppendAssignsSNO 测试追加序号
func TestAppendAssignsSNO(t *testing.T) {
	l := NewLedger()
	for i := 1; i <= 3; i++ {
		r := l.Append(result(float64(i)))
		if r.SNO != i {
			t.Errorf("SNO = %d, want %d", r.SNO, i)
		}
	}

	entries := l.Entries()
	for i, r := range entries {
		if r.SNO != i+1 {
			t.Errorf("entries[%d].SNO = %d, want %d", i, r.SNO, i+1)
		}
	}
}

// TestRemoveLast 测试撤销最后一条
func TestRemoveLast(t *testing.T) {
	l := NewLedger()

	if _, err := l.RemoveLast(); !errors.Is(err, ErrEmptyLedger) {
		t.Fatalf("RemoveLast on empty ledger: err = %v, want ErrEmptyLedger", err)
	}
	if l.Len() != 0 {
		t.Fatalf("empty ledger changed: %d", l.Len())
	}

	l.Append(result(100))
	l.Append(result(200))
	l.Append(result(300))

	removed, err := l.RemoveLast()
	if err != nil {
		t.Fatalf("RemoveLast: %v", err)
	}
	if removed.Total != 300 || removed.SNO != 3 {
		t.Errorf("removed = %+v, want tail entry", removed)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	entries := l.Entries()
	if entries[0].Total != 100 || entries[1].Total != 200 {
		t.Errorf("remaining entries changed: %+v", entries)
	}
}

// TestSNOReusedAfterRemoveLast 撤销后再追加复用序号，已有序号不重排
func TestSNOReusedAfterRemoveLast(t *testing.T) {
	l := NewLedger()
	l.Append(result(1))
	l.Append(result(2))
	_, _ = l.RemoveLast()

	r := l.Append(result(3))
	if r.SNO != 2 {
		t.Errorf("SNO = %d, want 2", r.SNO)
	}
	if l.Entries()[0].SNO != 1 {
		t.Errorf("first entry renumbered")
	}
}

// TestRemoveAll 测试清空
func TestRemoveAll(t *testing.T) {
	l := NewLedger()
	if n := l.RemoveAll(); n != 0 {
		t.Errorf("RemoveAll on empty = %d, want 0", n)
	}

	l.Append(result(1))
	l.Append(result(2))
	if n := l.RemoveAll(); n != 2 {
		t.Errorf("RemoveAll = %d, want 2", n)
	}
	if l.Len() != 0 {
		t.Errorf("Len after RemoveAll = %d", l.Len())
	}
	if r := l.Append(result(5)); r.SNO != 1 {
		t.Errorf("SNO after RemoveAll = %d, want 1", r.SNO)
	}
}

// TestGrandTotal 合计 = Σ total / 1000
func TestGrandTotal(t *testing.T) {
	l := NewLedger()
	totals := []float64{9542.039, 22540.854, 13724.584, 0.001}

	var sum float64
	for _, v := range totals {
		l.Append(result(v))
		sum += v
	}

	if got := l.GrandTotal(); math.Abs(got-sum/1000) > 1e-6 {
		t.Errorf("GrandTotal = %v, want %v", got, sum/1000)
	}
}

// TestEntriesIsCopy 返回副本，不影响台账
func TestEntriesIsCopy(t *testing.T) {
	l := NewLedger()
	l.Append(result(1))

	entries := l.Entries()
	entries[0].Total = 999

	if l.Entries()[0].Total != 1 {
		t.Error("ledger entry mutated through Entries()")
	}
}

// TestConcurrentAppend 测试并发追加
func TestConcurrentAppend(t *testing.T) {
	l := NewLedger()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(result(1))
		}()
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Fatalf("Len = %d, want 50", l.Len())
	}
	seen := make(map[int]bool)
	for _, r := range l.Entries() {
		if seen[r.SNO] {
			t.Fatalf("duplicate SNO %d", r.SNO)
		}
		seen[r.SNO] = true
	}
}
