package service

import (
	"context"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/repository"
)

// DefaultLoadTimeout bounds the secondary fetch of a snapshot load. When
// it elapses the caller proceeds with whatever arrived; there is no
// automatic retry.
const DefaultLoadTimeout = 15 * time.Second

type snapshotService struct {
	projects     repository.ProjectRepo
	clients      repository.ClientRepo
	transactions repository.TransactionRepo
	accounts     repository.AccountRepo
	services     repository.ServiceTypeRepo
	appointments repository.AppointmentRepo
	timeout      time.Duration
	observer     UseCaseObserver
}

// NewSnapshotService creates the full-refresh loader. A non-positive
// timeout falls back to DefaultLoadTimeout.
func NewSnapshotService(
	projects repository.ProjectRepo,
	clients repository.ClientRepo,
	transactions repository.TransactionRepo,
	accounts repository.AccountRepo,
	services repository.ServiceTypeRepo,
	appointments repository.AppointmentRepo,
	timeout time.Duration,
	observer UseCaseObserver,
) SnapshotService {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &snapshotService{
		projects:     projects,
		clients:      clients,
		transactions: transactions,
		accounts:     accounts,
		services:     services,
		appointments: appointments,
		timeout:      timeout,
		observer:     observer,
	}
}

type secondarySets struct {
	snapshot *Snapshot
	err      error
}

// Load fetches the primary record sets synchronously and the larger
// secondary sets in the background. Primary failures fail the load;
// a slow or failing secondary fetch yields a partial snapshot instead.
func (s *snapshotService) Load(ctx context.Context, ownerID string) (*Snapshot, error) {
	started := time.Now()

	projects, err := s.projects.ListWithSteps(ctx, ownerID)
	if err != nil {
		return nil, db.Normalize(err)
	}
	clients, err := s.clients.List(ctx, ownerID)
	if err != nil {
		return nil, db.Normalize(err)
	}

	snap := &Snapshot{Projects: projects, Clients: clients}

	// The channel is buffered so a fetch finishing after the deadline
	// does not leak the goroutine.
	results := make(chan secondarySets, 1)
	go func() {
		results <- s.loadSecondary(ctx, ownerID)
	}()

	select {
	case res := <-results:
		if res.err != nil {
			snap.Partial = true
			s.observe(ctx, started, res.err, snap)
			return snap, nil
		}
		snap.Transactions = res.snapshot.Transactions
		snap.Accounts = res.snapshot.Accounts
		snap.Services = res.snapshot.Services
		snap.Appointments = res.snapshot.Appointments
	case <-time.After(s.timeout):
		snap.Partial = true
	case <-ctx.Done():
		snap.Partial = true
	}

	s.observe(ctx, started, nil, snap)
	return snap, nil
}

func (s *snapshotService) loadSecondary(ctx context.Context, ownerID string) secondarySets {
	transactions, err := s.transactions.List(ctx, ownerID)
	if err != nil {
		return secondarySets{err: db.Normalize(err)}
	}
	accounts, err := s.accounts.List(ctx, ownerID)
	if err != nil {
		return secondarySets{err: db.Normalize(err)}
	}
	services, err := s.services.List(ctx, ownerID)
	if err != nil {
		return secondarySets{err: db.Normalize(err)}
	}
	appointments, err := s.appointments.List(ctx, ownerID)
	if err != nil {
		return secondarySets{err: db.Normalize(err)}
	}
	return secondarySets{snapshot: &Snapshot{
		Transactions: transactions,
		Accounts:     accounts,
		Services:     services,
		Appointments: appointments,
	}}
}

func (s *snapshotService) observe(ctx context.Context, started time.Time, err error, snap *Snapshot) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "snapshot_load",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"partial": snap.Partial, "projects": len(snap.Projects)},
		StartedAt: started,
	})
}
