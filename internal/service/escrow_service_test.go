package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/escrow"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

type sinkRecorder struct {
	mu     sync.Mutex
	events []models.Event
}

func (s *sinkRecorder) Publish(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *sinkRecorder) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, event := range s.events {
		out = append(out, event.Type)
	}
	return out
}

type journalRecorder struct {
	appended chan models.Event
}

func newJournalRecorder() *journalRecorder {
	return &journalRecorder{appended: make(chan models.Event, 16)}
}

func (j *journalRecorder) Append(_ context.Context, event models.Event) error {
	j.appended <- event
	return nil
}

func newTestService(t *testing.T, notifier escrow.Notifier) (*EscrowService, uuid.UUID, uuid.UUID) {
	t.Helper()
	owner := uuid.New()
	agent := uuid.New()
	engine, err := escrow.NewEngine(owner, agent, escrow.DefaultParams(), nil, notifier, nil)
	assert.NoError(t, err)
	return NewEscrowService(engine), owner, agent
}

func TestEscrowService_FullLifecycle(t *testing.T) {
	svc, _, agent := newTestService(t, nil)
	submitter := uuid.New()
	journalist := uuid.New()
	hash := strings.Repeat("cd", 32)

	id, err := svc.CreateSubmission(submitter, hash, "", 50, 100, false)
	assert.NoError(t, err)

	assert.NoError(t, svc.RegisterJournalist(journalist, "press"))
	assert.NoError(t, svc.SetJournalistApproval(agent, journalist, true))
	assert.NoError(t, svc.RecordEvaluation(agent, id, 85, "publish"))

	token, err := svc.AccessSubmission(journalist, id, 50)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sub, err := svc.GetSubmission(id)
	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusAccessed, sub.Status)
	assert.Equal(t, 150.0, svc.Balance(submitter))

	amount, err := svc.Withdraw(submitter)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, amount)
}

func TestEscrowService_ConcurrentCreates(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	hash := strings.Repeat("ef", 32)

	const workers = 8
	ids := make(chan uint64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := svc.CreateSubmission(uuid.New(), hash, "", 10, 100, false)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	// Идентификаторы уникальны и при параллельных вызовах.
	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestEscrowService_ReadsSerializedWithMutations(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	submitter := uuid.New()
	hash := strings.Repeat("ab", 32)

	const submissions = 10
	for i := 0; i < submissions; i++ {
		_, err := svc.CreateSubmission(submitter, hash, "", 10, 120, false)
		assert.NoError(t, err)
	}

	// Читатели крутятся параллельно с отменами. Каждая копия заявки
	// обязана быть целостной: pending со стейком либо cancelled с нулём,
	// никаких промежуточных комбинаций.
	stop := make(chan struct{})
	var readers sync.WaitGroup
	for w := 0; w < 4; w++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for id := uint64(1); id <= submissions; id++ {
					sub, err := svc.GetSubmission(id)
					if !assert.NoError(t, err) {
						return
					}
					switch sub.Status {
					case models.SubmissionStatusPending:
						assert.Equal(t, 120.0, sub.StakeAmount)
					case models.SubmissionStatusCancelled:
						assert.Equal(t, 0.0, sub.StakeAmount)
					default:
						t.Errorf("неожиданный статус %q", sub.Status)
						return
					}
				}
			}
		}()
	}

	for id := uint64(1); id <= submissions; id++ {
		assert.NoError(t, svc.CancelSubmission(submitter, id))
	}
	close(stop)
	readers.Wait()
}

func TestEscrowService_ReceiveValueRejected(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	assert.ErrorIs(t, svc.ReceiveValue(uuid.New(), 10), apperror.ErrRejected)
}

func TestEventFanout_DeliversToSinkAndJournal(t *testing.T) {
	sink := &sinkRecorder{}
	journal := newJournalRecorder()
	fanout := NewEventFanout(context.Background(), sink, journal)

	svc, _, _ := newTestService(t, fanout)
	hash := strings.Repeat("aa", 31) + "bb"

	_, err := svc.CreateSubmission(uuid.New(), hash, "", 10, 100, false)
	assert.NoError(t, err)

	assert.Equal(t, []string{models.EventSubmissionCreated}, sink.types())

	// Журнал пишется асинхронно.
	select {
	case event := <-journal.appended:
		assert.Equal(t, models.EventSubmissionCreated, event.Type)
	case <-time.After(time.Second):
		t.Fatal("событие не дошло до журнала")
	}
}

func TestEventFanout_NilSinkAndJournal(t *testing.T) {
	fanout := NewEventFanout(context.Background(), nil, nil)

	// Без получателей публикация не должна паниковать.
	assert.NotPanics(t, func() {
		fanout.Publish(models.Event{Type: models.EventWithdrawal, OccurredAt: time.Now()})
	})
}
