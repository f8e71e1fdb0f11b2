package escrow

import (
	"time"

	"github.com/google/uuid"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/pkg/apperror"
)

// Treasury — примитив внешнего перевода средств. Реализация может
// исполнять произвольный код на стороне получателя, поэтому каждый
// перевод выполняется строго последним шагом операции, под guard.
type Treasury interface {
	Transfer(to uuid.UUID, amount float64) error
}

// Notifier получает уведомления движка. Вызывается после фиксации
// эффектов; движок на нём не блокируется и ошибок не ожидает.
type Notifier interface {
	Publish(event models.Event)
}

// Params — экономические константы эскроу.
type Params struct {
	MinStake               float64
	MaxAccessFee           float64
	PassScore              int
	Timeout                time.Duration
	MaxSubmissionsPerParty int
}

// DefaultParams возвращает значения по умолчанию.
func DefaultParams() Params {
	return Params{
		MinStake:               100,
		MaxAccessFee:           100000,
		PassScore:              70,
		Timeout:                7 * 24 * time.Hour,
		MaxSubmissionsPerParty: 10,
	}
}

// Engine — эскроу-движок: владеет всеми хранилищами и единолично
// мутирует их. Каждая операция выполняется по дисциплине
// checks-effects-interactions: проверки, затем эффекты, затем не более
// одного внешнего перевода. Вызовы должны быть сериализованы снаружи
// (см. service.EscrowService); guard ловит только повторный вход
// изнутри операции через Treasury.
type Engine struct {
	params Params
	owner  uuid.UUID
	agent  uuid.UUID
	poolID uuid.UUID
	paused bool

	guard reentrancyGuard
	now   func() time.Time

	submissions *SubmissionStore
	evaluations *EvaluationStore
	registry    *JournalistRegistry
	ledger      *WithdrawalLedger
	tokens      *AccessTokenIssuer
	treasury    Treasury
	notifier    Notifier
}

type nopTreasury struct{}

func (nopTreasury) Transfer(uuid.UUID, float64) error { return nil }

type nopNotifier struct{}

func (nopNotifier) Publish(models.Event) {}

// NewEngine создаёт движок. Владелец — вызывающая сторона конструктора.
func NewEngine(owner, agent uuid.UUID, params Params, treasury Treasury, notifier Notifier, seeds SeedSource) (*Engine, error) {
	if agent == uuid.Nil {
		return nil, apperror.ErrInvalidAgent
	}
	if owner == uuid.Nil {
		return nil, apperror.ErrInvalidAddress
	}
	if treasury == nil {
		treasury = nopTreasury{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Engine{
		params:      params,
		owner:       owner,
		agent:       agent,
		poolID:      uuid.New(),
		now:         time.Now,
		submissions: NewSubmissionStore(params.MaxSubmissionsPerParty),
		evaluations: NewEvaluationStore(),
		registry:    NewJournalistRegistry(),
		ledger:      NewWithdrawalLedger(),
		tokens:      NewAccessTokenIssuer(seeds),
		treasury:    treasury,
		notifier:    notifier,
	}, nil
}

// Owner возвращает владельца движка.
func (e *Engine) Owner() uuid.UUID { return e.owner }

// Agent возвращает текущего агента.
func (e *Engine) Agent() uuid.UUID { return e.agent }

// PoolID — идентификатор пула анонимных гонораров. Пул принадлежит
// самому движку; путь выплаты из него не определён.
func (e *Engine) PoolID() uuid.UUID { return e.poolID }

// Paused сообщает, активен ли circuit breaker.
func (e *Engine) Paused() bool { return e.paused }

// CreateSubmission регистрирует новую заявку и блокирует залог.
func (e *Engine) CreateSubmission(caller uuid.UUID, contentHash, categoryHash string, accessFee, stake float64, anonymous bool) (uint64, error) {
	if err := e.guard.enter(); err != nil {
		return 0, err
	}
	defer e.guard.leave()

	if e.paused {
		return 0, apperror.ErrPaused
	}
	if caller == uuid.Nil {
		return 0, apperror.ErrInvalidAddress
	}
	if !ValidateHash(contentHash) {
		return 0, apperror.ErrInvalidInput
	}
	if accessFee <= 0 || accessFee > e.params.MaxAccessFee {
		return 0, apperror.ErrInvalidInput
	}
	if stake < e.params.MinStake {
		return 0, apperror.ErrInsufficientStake
	}

	submitter := caller
	if anonymous {
		submitter = models.AnonymousSubmitter
	}
	sub := &models.Submission{
		ContentHash:  contentHash,
		CategoryHash: categoryHash,
		Submitter:    submitter,
		AccessFee:    accessFee,
		StakeAmount:  stake,
		CreatedAt:    e.now(),
		PayoutID:     caller,
	}
	id, err := e.submissions.Add(sub)
	if err != nil {
		return 0, err
	}

	e.emit(models.Event{
		Type:         models.EventSubmissionCreated,
		SubmissionID: id,
		Party:        submitter,
		Amount:       accessFee,
		OccurredAt:   sub.CreatedAt,
		Data:         map[string]any{"content_hash": contentHash, "stake": stake},
	})
	return id, nil
}

// GetSubmission возвращает копию заявки.
func (e *Engine) GetSubmission(id uint64) (models.Submission, error) {
	return e.submissions.Snapshot(id)
}

// GetEvaluation возвращает оценку заявки.
func (e *Engine) GetEvaluation(id uint64) (models.Evaluation, error) {
	return e.evaluations.Get(id)
}

// GetJournalist возвращает профиль журналиста.
func (e *Engine) GetJournalist(id uuid.UUID) (models.JournalistProfile, error) {
	return e.registry.Get(id)
}

// Balance возвращает накопленный к выводу баланс участника.
func (e *Engine) Balance(party uuid.UUID) float64 {
	return e.ledger.Balance(party)
}

// CancelSubmission отменяет pending-заявку, залог уходит в ledger
// отправителя (pull-паттерн, прямой выплаты нет).
func (e *Engine) CancelSubmission(caller uuid.UUID, id uint64) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if e.paused {
		return apperror.ErrPaused
	}
	sub, err := e.submissions.Get(id)
	if err != nil {
		return err
	}
	if caller != sub.PayoutID {
		return apperror.ErrNotOwner
	}
	if sub.Status != models.SubmissionStatusPending {
		return apperror.ErrInvalidState
	}

	refund := sub.StakeAmount
	sub.Status = models.SubmissionStatusCancelled
	sub.StakeAmount = 0
	e.ledger.Credit(sub.PayoutID, refund)

	e.emit(models.Event{
		Type:         models.EventSubmissionCancelled,
		SubmissionID: id,
		Party:        sub.Submitter,
		Amount:       refund,
		OccurredAt:   e.now(),
	})
	return nil
}

// RecordEvaluation записывает единственную оценку агента. При score
// не ниже порога заявка переходит в verified; иначе остаётся pending,
// но становится доступной для штрафа (признак — наличие записи).
func (e *Engine) RecordEvaluation(caller uuid.UUID, id uint64, score int, action string) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller != e.agent {
		return apperror.ErrUnauthorized
	}
	sub, err := e.submissions.Get(id)
	if err != nil {
		return err
	}
	if score < 0 || score > 100 {
		return apperror.ErrInvalidScore
	}
	if e.evaluations.Contains(id) {
		return apperror.ErrAlreadyEvaluated
	}
	if sub.Status != models.SubmissionStatusPending {
		return apperror.ErrInvalidState
	}

	eval := models.Evaluation{
		SubmissionID:      id,
		Score:             score,
		RecommendedAction: action,
		EvaluatedAt:       e.now(),
	}
	if err := e.evaluations.Put(eval); err != nil {
		return err
	}
	if score >= e.params.PassScore {
		sub.Status = models.SubmissionStatusVerified
	}

	e.emit(models.Event{
		Type:         models.EventEvaluationRecorded,
		SubmissionID: id,
		Party:        caller,
		OccurredAt:   eval.EvaluatedAt,
		Data:         map[string]any{"score": score, "recommended_action": action},
	})
	return nil
}

// RegisterJournalist создаёт неодобренный профиль вызывающего.
func (e *Engine) RegisterJournalist(caller uuid.UUID, metadata string) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller == uuid.Nil {
		return apperror.ErrInvalidAddress
	}
	now := e.now()
	if err := e.registry.Register(caller, metadata, now); err != nil {
		return err
	}
	e.emit(models.Event{
		Type:       models.EventJournalistRegistered,
		Party:      caller,
		OccurredAt: now,
	})
	return nil
}

// SetJournalistApproval переключает одобрение профиля. Только агент.
func (e *Engine) SetJournalistApproval(caller, journalist uuid.UUID, approved bool) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller != e.agent {
		return apperror.ErrUnauthorized
	}
	if err := e.registry.SetApproval(journalist, approved); err != nil {
		return err
	}
	e.emit(models.Event{
		Type:       models.EventApprovalChanged,
		Party:      journalist,
		OccurredAt: e.now(),
		Data:       map[string]any{"approved": approved},
	})
	return nil
}

// AccessSubmission — платный доступ к проверенной заявке. Эффекты
// (статус, токен, зачисления в ledger) фиксируются до внешнего
// перевода сдачи; при неудаче перевода операция откатывается целиком.
func (e *Engine) AccessSubmission(caller uuid.UUID, id uint64, payment float64) (string, error) {
	if err := e.guard.enter(); err != nil {
		return "", err
	}
	defer e.guard.leave()

	if e.paused {
		return "", apperror.ErrPaused
	}
	sub, err := e.submissions.Get(id)
	if err != nil {
		return "", err
	}
	if sub.Status != models.SubmissionStatusVerified {
		return "", apperror.ErrNotVerified
	}
	if payment < sub.AccessFee {
		return "", apperror.ErrInsufficientPayment
	}
	if !e.registry.IsApproved(caller) {
		return "", apperror.ErrNotApproved
	}

	// Effects.
	prev := *sub
	now := e.now()
	fee := sub.AccessFee
	stake := sub.StakeAmount

	// Гонорар анонимной заявки уходит в пул движка: заявить права на
	// него, не раскрыв себя, отправитель не может. Путь выплаты из
	// пула не определён.
	feeRecipient := sub.PayoutID
	if sub.Anonymous() {
		feeRecipient = e.poolID
	}

	token := e.tokens.Mint(id, caller, now)
	sub.Status = models.SubmissionStatusAccessed
	sub.Accessor = caller
	sub.AccessedAt = &now
	sub.AccessToken = token
	sub.StakeAmount = 0
	e.ledger.Credit(feeRecipient, fee)
	e.ledger.Credit(prev.PayoutID, stake)

	// Interaction: возврат сдачи вызывающему.
	if excess := payment - fee; excess > 0 {
		if err := e.treasury.Transfer(caller, excess); err != nil {
			*sub = prev
			e.ledger.Debit(feeRecipient, fee)
			e.ledger.Debit(prev.PayoutID, stake)
			return "", apperror.Wrap(err, apperror.ErrCodeTransferFailed, "не удалось вернуть сдачу")
		}
	}

	e.emit(models.Event{
		Type:         models.EventSubmissionAccessed,
		SubmissionID: id,
		Party:        caller,
		Amount:       fee,
		OccurredAt:   now,
	})
	return token, nil
}

// SlashStake конфискует залог оценённой, но не прошедшей порог заявки.
func (e *Engine) SlashStake(caller uuid.UUID, id uint64) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller != e.agent {
		return apperror.ErrUnauthorized
	}
	sub, err := e.submissions.Get(id)
	if err != nil {
		return err
	}
	eval, err := e.evaluations.Get(id)
	if err != nil {
		return err
	}
	if eval.Score >= e.params.PassScore {
		return apperror.ErrScoreTooHigh
	}
	if sub.Status != models.SubmissionStatusPending && sub.Status != models.SubmissionStatusVerified {
		return apperror.ErrInvalidState
	}

	amount := sub.StakeAmount
	sub.StakeAmount = 0
	sub.Status = models.SubmissionStatusDisputed
	e.ledger.Credit(e.agent, amount)

	e.emit(models.Event{
		Type:         models.EventStakeSlashed,
		SubmissionID: id,
		Party:        e.agent,
		Amount:       amount,
		OccurredAt:   e.now(),
	})
	return nil
}

// TimeoutRefund возвращает плату за доступ, если выдача ключа не
// состоялась за отведённый срок. Доступен любому вызывающему.
func (e *Engine) TimeoutRefund(caller uuid.UUID, id uint64) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	sub, err := e.submissions.Get(id)
	if err != nil {
		return err
	}
	if sub.Status != models.SubmissionStatusAccessed {
		return apperror.ErrNotRefundable
	}
	if sub.AccessedAt == nil || e.now().Before(sub.AccessedAt.Add(e.params.Timeout)) {
		return apperror.ErrTimeoutNotReached
	}

	sub.Status = models.SubmissionStatusRefunded
	e.ledger.Credit(sub.Accessor, sub.AccessFee)

	e.emit(models.Event{
		Type:         models.EventTimeoutRefunded,
		SubmissionID: id,
		Party:        sub.Accessor,
		Amount:       sub.AccessFee,
		OccurredAt:   e.now(),
	})
	return nil
}

// Withdraw обнуляет баланс вызывающего и выполняет внешний перевод.
// Баланс обнуляется до перевода; при неудаче возвращается на место,
// операция целиком либо проходит, либо нет.
func (e *Engine) Withdraw(caller uuid.UUID) (float64, error) {
	if err := e.guard.enter(); err != nil {
		return 0, err
	}
	defer e.guard.leave()

	amount := e.ledger.Take(caller)
	if amount <= 0 {
		return 0, apperror.ErrNothingToWithdraw
	}
	if err := e.treasury.Transfer(caller, amount); err != nil {
		e.ledger.Restore(caller, amount)
		return 0, apperror.Wrap(err, apperror.ErrCodeTransferFailed, "вывод средств не выполнен")
	}

	e.emit(models.Event{
		Type:       models.EventWithdrawal,
		Party:      caller,
		Amount:     amount,
		OccurredAt: e.now(),
	})
	return amount, nil
}

// SetAgent заменяет агента. Только владелец.
func (e *Engine) SetAgent(caller, newAgent uuid.UUID) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller != e.owner {
		return apperror.ErrUnauthorized
	}
	if newAgent == uuid.Nil {
		return apperror.ErrInvalidAddress
	}
	e.agent = newAgent

	e.emit(models.Event{
		Type:       models.EventAgentRotated,
		Party:      newAgent,
		OccurredAt: e.now(),
	})
	return nil
}

// Pause включает circuit breaker: create, cancel и access перестают
// работать. Пути вывода и возврата средств не блокируются никогда.
func (e *Engine) Pause(caller uuid.UUID) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller != e.owner {
		return apperror.ErrUnauthorized
	}
	e.paused = true
	return nil
}

// Unpause снимает circuit breaker.
func (e *Engine) Unpause(caller uuid.UUID) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()

	if caller != e.owner {
		return apperror.ErrUnauthorized
	}
	e.paused = false
	return nil
}

// ReceiveValue отклоняет перевод средств вне операций: иначе сумма
// стала бы невидимой для ledger.
func (e *Engine) ReceiveValue(from uuid.UUID, amount float64) error {
	return apperror.ErrRejected
}

func (e *Engine) emit(event models.Event) {
	e.notifier.Publish(event)
}
