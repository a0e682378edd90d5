package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"towerweight/internal/service/store"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

type session struct {
	id           string
	createdAt    time.Time
	lastActiveAt time.Time
	ledger       *store.Ledger
}

// Manager 会话管理器：每个会话独占一份计算台账，会话之间不共享
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager 创建会话管理器；ttl<=0 表示不过期
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create 新建会话（空台账）
func (m *Manager) Create() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &session{
		id:           uuid.NewString(),
		createdAt:    now,
		lastActiveAt: now,
		ledger:       store.NewLedger(),
	}
	m.sessions[s.id] = s
	return s.summary()
}

// Ledger 获取会话台账并刷新活跃时间
func (m *Manager) Ledger(id string) (*store.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[normalizeID(id)]
	if !ok || m.expiredLocked(s, m.now()) {
		return nil, ErrSessionNotFound
	}
	s.lastActiveAt = m.now()
	return s.ledger, nil
}

// Get 获取会话概要
func (m *Manager) Get(id string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[normalizeID(id)]
	if !ok || m.expiredLocked(s, m.now()) {
		return Summary{}, ErrSessionNotFound
	}
	return s.summary(), nil
}

// Delete 结束会话，台账随之丢弃
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id = normalizeID(id)
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count 会话数量
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep 清理过期会话，返回清理数量
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if m.expiredLocked(s, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run 定期清理过期会话，直到 ctx 结束
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("清理过期会话 %d 个", n)
			}
		}
	}
}

func (m *Manager) expiredLocked(s *session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.lastActiveAt) > m.ttl
}

func (s *session) summary() Summary {
	return Summary{
		SessionID:    s.id,
		CreatedAt:    s.createdAt,
		LastActiveAt: s.lastActiveAt,
		ResultCount:  s.ledger.Len(),
	}
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
