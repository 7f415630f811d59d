package service

import (
	"context"
	"fmt"
	"sync"

	"toolshare-admin/internal/domain"
)

// requireAdmin re-reads admins/{uid} and checks the record still grants
// console access.
func (s *reportService) requireAdmin(ctx context.Context, uid string) (*domain.Admin, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: no admin identity", ErrSession)
	}
	admin, err := s.adminRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSession, err)
	}
	if !admin.IsAuthorized() {
		return nil, fmt.Errorf("%w: admin %s is inactive or has role %q", ErrSession, uid, admin.Role)
	}
	return admin, nil
}

// sessionGuard allows one in-flight resolution per admin.
type sessionGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newSessionGuard() *sessionGuard {
	return &sessionGuard{active: make(map[string]struct{})}
}

func (g *sessionGuard) acquire(uid string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[uid]; busy {
		return false
	}
	g.active[uid] = struct{}{}
	return true
}

func (g *sessionGuard) release(uid string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, uid)
}
