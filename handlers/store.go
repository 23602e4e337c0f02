// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/danielhkuo/triangle/draft"
	"github.com/danielhkuo/triangle/models"
)

var ErrDraftNotFound = errors.New("draft not found")

const (
	defaultDraftCapacity = 1024
	defaultDraftTTL      = 2 * time.Hour
)

// draftEntry serializes every operation on one draft, submission included
type draftEntry struct {
	mu     sync.Mutex
	survey *draft.Survey
}

// DraftStore holds authoring sessions in memory. Drafts untouched for the
// TTL, or pushed out by capacity, are dropped.
type DraftStore struct {
	drafts *expirable.LRU[string, *draftEntry]
}

func NewDraftStore(capacity int, ttl time.Duration) *DraftStore {
	if capacity <= 0 {
		capacity = defaultDraftCapacity
	}
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	return &DraftStore{
		drafts: expirable.NewLRU[string, *draftEntry](capacity, nil, ttl),
	}
}

// Create starts a session holding d, or a fresh draft when d is nil.
func (s *DraftStore) Create(d *draft.Survey) (string, models.DraftBody) {
	if d == nil {
		d = draft.New()
	}
	id := uuid.NewString()
	s.drafts.Add(id, &draftEntry{survey: d})
	return id, d.Body()
}

// With runs fn on the draft under its lock and returns the resulting state.
// The session's expiry is pushed back on every call.
func (s *DraftStore) With(id string, fn func(d *draft.Survey) error) (models.DraftBody, error) {
	entry, ok := s.drafts.Get(id)
	if !ok {
		return models.DraftBody{}, ErrDraftNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	err := fn(entry.survey)
	if cur, ok := s.drafts.Peek(id); ok && cur == entry {
		s.drafts.Add(id, entry)
	}
	return entry.survey.Body(), err
}

// Delete ends a session.
func (s *DraftStore) Delete(id string) {
	s.drafts.Remove(id)
}

func (s *DraftStore) Len() int {
	return s.drafts.Len()
}
