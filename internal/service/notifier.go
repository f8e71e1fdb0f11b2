package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/goroutine"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/logger"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/models"
)

// EventSink принимает уведомление для рассылки (ws.Hub).
type EventSink interface {
	Publish(event models.Event)
}

// JournalWriter дописывает уведомление в аудиторский журнал.
type JournalWriter interface {
	Append(ctx context.Context, event models.Event) error
}

// EventFanout — escrow.Notifier, раздающий уведомления в лог,
// websocket-хаб и журнал. Журнал пишется асинхронно: движок не ждёт
// базу и не узнаёт о её ошибках.
type EventFanout struct {
	ctx     context.Context
	sink    EventSink
	journal JournalWriter
}

func NewEventFanout(ctx context.Context, sink EventSink, journal JournalWriter) *EventFanout {
	return &EventFanout{ctx: ctx, sink: sink, journal: journal}
}

// Publish реализует escrow.Notifier.
func (f *EventFanout) Publish(event models.Event) {
	logger.WithComponent("escrow").WithFields(logrus.Fields{
		"event":         event.Type,
		"submission_id": event.SubmissionID,
		"party":         event.Party,
		"amount":        event.Amount,
	}).Info("уведомление движка")

	if f.sink != nil {
		f.sink.Publish(event)
	}

	if f.journal != nil {
		goroutine.SafeGoWithContext(f.ctx, func(ctx context.Context) {
			if err := f.journal.Append(ctx, event); err != nil {
				logger.WithComponent("escrow").WithError(err).Error("не удалось записать событие в журнал")
			}
		})
	}
}
