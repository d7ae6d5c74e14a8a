package drafts

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

var _ repository.DraftRepository = (*Memory)(nil)

// Memory keeps drafts in process. Stored drafts are copied in and out so
// callers never share state with the store.
type Memory struct {
	mu     sync.RWMutex
	drafts map[string][]byte
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{drafts: make(map[string][]byte), now: time.Now}
}

func (m *Memory) Save(_ context.Context, draft *domain.ReturnDraft) error {
	stamp(draft, m.now())
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.drafts[draft.ID] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*domain.ReturnDraft, error) {
	m.mu.RLock()
	raw, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, repository.ErrDraftNotFound
	}
	return decodeDraft(raw)
}

func (m *Memory) GetActiveByBooking(ctx context.Context, bookingID string) (*domain.ReturnDraft, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].BookingID == bookingID && all[i].Step != domain.StepFinalized {
			return &all[i], nil
		}
	}
	return nil, repository.ErrDraftNotFound
}

func (m *Memory) List(_ context.Context) ([]domain.ReturnDraft, error) {
	m.mu.RLock()
	out := make([]domain.ReturnDraft, 0, len(m.drafts))
	for _, raw := range m.drafts {
		d, err := decodeDraft(raw)
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		out = append(out, *d)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.drafts, id)
	m.mu.Unlock()
	return nil
}

// DeleteStaleBefore scans and deletes under one write lock so a draft saved
// during the purge is judged by its new timestamp.
func (m *Memory) DeleteStaleBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, raw := range m.drafts {
		d, err := decodeDraft(raw)
		if err != nil {
			return n, err
		}
		if d.UpdatedAt.Before(cutoff) {
			delete(m.drafts, id)
			n++
		}
	}
	return n, nil
}

func decodeDraft(raw []byte) (*domain.ReturnDraft, error) {
	var d domain.ReturnDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
