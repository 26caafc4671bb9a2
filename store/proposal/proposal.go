package proposal

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/tipdao/chat-wallet/core"
	"github.com/tipdao/chat-wallet/store"
)

// shardCount spreads users over independent locks so one user's proposal
// traffic never contends with another's.
const shardCount = 32

// New returns an in-memory proposal store with per-user atomic operations.
func New() core.ProposalStore {
	s := &proposalStore{}
	for i := range s.shards {
		s.shards[i] = &shard{proposals: map[string]*core.TransferProposal{}}
	}

	return s
}

type shard struct {
	mux       sync.Mutex
	proposals map[string]*core.TransferProposal
}

type proposalStore struct {
	shards [shardCount]*shard
}

func (s *proposalStore) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%shardCount]
}

func (s *proposalStore) Create(_ context.Context, proposal *core.TransferProposal) error {
	sh := s.shardFor(proposal.UserID)
	sh.mux.Lock()
	defer sh.mux.Unlock()

	if _, ok := sh.proposals[proposal.UserID]; ok {
		return store.ErrExists
	}

	sh.proposals[proposal.UserID] = proposal
	return nil
}

func (s *proposalStore) Find(_ context.Context, userID string) (*core.TransferProposal, error) {
	sh := s.shardFor(userID)
	sh.mux.Lock()
	defer sh.mux.Unlock()

	p, ok := sh.proposals[userID]
	if !ok {
		return nil, store.ErrNotFound
	}

	return p, nil
}

func (s *proposalStore) Delete(_ context.Context, userID string) (bool, error) {
	sh := s.shardFor(userID)
	sh.mux.Lock()
	defer sh.mux.Unlock()

	if _, ok := sh.proposals[userID]; !ok {
		return false, nil
	}

	delete(sh.proposals, userID)
	return true, nil
}

func (s *proposalStore) DeleteExpired(_ context.Context, cutoff time.Time) ([]*core.TransferProposal, error) {
	var removed []*core.TransferProposal

	for _, sh := range s.shards {
		sh.mux.Lock()
		for userID, p := range sh.proposals {
			if p.CreatedAt.Before(cutoff) {
				removed = append(removed, p)
				delete(sh.proposals, userID)
			}
		}
		sh.mux.Unlock()
	}

	return removed, nil
}
