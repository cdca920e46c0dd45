package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/models"
)

// 内存实现只作测试替身使用，单进程内自己串行化，WithTx 为空操作。

type MemoryLikeIndex struct {
	mu    sync.Mutex
	pairs map[[2]int64]bool // {userID, filmID}
}

func NewMemoryLikeIndex() *MemoryLikeIndex {
	return &MemoryLikeIndex{pairs: make(map[[2]int64]bool)}
}

func (m *MemoryLikeIndex) WithTx(_ *gorm.DB) LikeIndex { return m }

func (m *MemoryLikeIndex) Put(_ context.Context, userID, filmID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, filmID}
	if m.pairs[key] {
		return false, nil
	}
	m.pairs[key] = true
	return true, nil
}

func (m *MemoryLikeIndex) Delete(_ context.Context, userID, filmID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, filmID}
	if !m.pairs[key] {
		return false, nil
	}
	delete(m.pairs, key)
	return true, nil
}

func (m *MemoryLikeIndex) Count(_ context.Context, filmID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var cnt int64
	for key := range m.pairs {
		if key[1] == filmID {
			cnt++
		}
	}
	return cnt, nil
}

func (m *MemoryLikeIndex) IsLiked(_ context.Context, userID, filmID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairs[[2]int64{userID, filmID}], nil
}

func (m *MemoryLikeIndex) FilmsLikedBy(_ context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0)
	for key := range m.pairs {
		if key[0] == userID {
			ids = append(ids, key[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryLikeIndex) LikersOf(_ context.Context, filmID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0)
	for key := range m.pairs {
		if key[1] == filmID {
			ids = append(ids, key[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type MemoryFriendGraph struct {
	mu    sync.Mutex
	edges map[int64]map[int64]bool
}

func NewMemoryFriendGraph() *MemoryFriendGraph {
	return &MemoryFriendGraph{edges: make(map[int64]map[int64]bool)}
}

func (m *MemoryFriendGraph) WithTx(_ *gorm.DB) FriendGraph { return m }

func (m *MemoryFriendGraph) Put(_ context.Context, userID, friendID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edges[userID][friendID] {
		return false, nil
	}
	m.link(userID, friendID)
	m.link(friendID, userID)
	return true, nil
}

func (m *MemoryFriendGraph) link(a, b int64) {
	if m.edges[a] == nil {
		m.edges[a] = make(map[int64]bool)
	}
	m.edges[a][b] = true
}

func (m *MemoryFriendGraph) Delete(_ context.Context, userID, friendID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.edges[userID][friendID] {
		return false, nil
	}
	delete(m.edges[userID], friendID)
	delete(m.edges[friendID], userID)
	return true, nil
}

func (m *MemoryFriendGraph) FriendsOf(_ context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.edges[userID]))
	for id := range m.edges[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryFriendGraph) Common(_ context.Context, userID, otherID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0)
	for id := range m.edges[userID] {
		if id == userID || id == otherID {
			continue
		}
		if m.edges[otherID][id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type MemoryVoteLedger struct {
	mu     sync.Mutex
	votes  map[[2]int64]bool // {reviewID, userID} -> isLike
	useful map[int64]int
}

func NewMemoryVoteLedger() *MemoryVoteLedger {
	return &MemoryVoteLedger{
		votes:  make(map[[2]int64]bool),
		useful: make(map[int64]int),
	}
}

func (m *MemoryVoteLedger) WithTx(_ *gorm.DB) VoteLedger { return m }

func (m *MemoryVoteLedger) Vote(_ context.Context, reviewID, userID int64, isLike bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{reviewID, userID}
	prev, voted := m.votes[key]
	if voted && prev == isLike {
		return errs.Conflict("пользователь %d уже голосовал так за отзыв %d", userID, reviewID)
	}
	delta := voteDelta(isLike)
	if voted {
		delta *= 2
	}
	m.votes[key] = isLike
	m.useful[reviewID] += delta
	return nil
}

func (m *MemoryVoteLedger) Retract(_ context.Context, reviewID, userID int64, wasLike bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{reviewID, userID}
	prev, voted := m.votes[key]
	if !voted || prev != wasLike {
		return errs.NotFound("голос пользователя %d за отзыв %d не найден", userID, reviewID)
	}
	delete(m.votes, key)
	m.useful[reviewID] -= voteDelta(wasLike)
	return nil
}

// Useful 当前累计分，供测试断言
func (m *MemoryVoteLedger) Useful(reviewID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.useful[reviewID]
}

type MemoryFeedLog struct {
	mu     sync.Mutex
	nextID int64
	events []models.FeedEvent
}

func NewMemoryFeedLog() *MemoryFeedLog { return &MemoryFeedLog{} }

func (m *MemoryFeedLog) WithTx(_ *gorm.DB) FeedLog { return m }

func (m *MemoryFeedLog) Append(_ context.Context, actorID, entityID int64, eventType, operation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.events = append(m.events, models.FeedEvent{
		ID:        m.nextID,
		UserID:    actorID,
		EntityID:  entityID,
		EventType: eventType,
		Operation: operation,
		Timestamp: time.Now().UnixMilli(),
	})
	return nil
}

func (m *MemoryFeedLog) ByUser(_ context.Context, userID int64, limit int) ([]models.FeedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.FeedEvent, 0)
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
