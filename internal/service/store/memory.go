package store

import (
	"errors"
	"sync"

	"towerweight/internal/model"
)

// ErrEmptyLedger 台账为空时撤销最后一条（提示，不是故障）
var ErrEmptyLedger = errors.New("no calculations to remove")

// Ledger 计算台账：按顺序追加，只支持撤销最后一条与清空
type Ledger struct {
	results []model.ResolvedResult
	mu      sync.RWMutex
}

// NewLedger 创建空台账
func NewLedger() *Ledger {
	return &Ledger{
		results: make([]model.ResolvedResult, 0, 16),
	}
}

// Append 追加结果，序号为追加时的长度+1
//
// 序号只是位置标签：撤销最后一条后再追加会复用被撤销的序号。
func (l *Ledger) Append(r model.ResolvedResult) model.ResolvedResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	r.SNO = len(l.results) + 1
	l.results = append(l.results, r)
	return r
}

// RemoveLast 撤销最后一条；台账为空时返回 ErrEmptyLedger 且不做任何修改
func (l *Ledger) RemoveLast() (model.ResolvedResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.results) == 0 {
		return model.ResolvedResult{}, ErrEmptyLedger
	}
	last := l.results[len(l.results)-1]
	l.results = l.results[:len(l.results)-1]
	return last, nil
}

// RemoveAll 清空台账，返回清除的条数
func (l *Ledger) RemoveAll() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.results)
	l.results = make([]model.ResolvedResult, 0, 16)
	return n
}

// Entries 获取全部结果（副本）
func (l *Ledger) Entries() []model.ResolvedResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]model.ResolvedResult, len(l.results))
	copy(result, l.results)
	return result
}

// Len 条数
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.results)
}

// GrandTotal 全部结果合计，kg 折算为吨
func (l *Ledger) GrandTotal() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sum float64
	for _, r := range l.results {
		sum += r.Total
	}
	return sum / 1000
}
