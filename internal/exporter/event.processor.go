package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/queue"
	"github.com/sjsneakers/resale-gateway/pkg/logger"
	"github.com/sjsneakers/resale-gateway/pkg/prom"
)

// SheetWriter is the slice of the sheets client the exporter needs.
type SheetWriter interface {
	AppendSale(ctx context.Context, sale *model.Sale, transfers []*model.Transfer) error
	AppendCompletion(ctx context.Context, transfer *model.Transfer) error
}

type LedgerEventProcessor struct {
	writer      SheetWriter
	idempotency *IdempotencyService
}

func NewLedgerEventProcessor(writer SheetWriter, idempotency *IdempotencyService) *LedgerEventProcessor {
	return &LedgerEventProcessor{
		writer:      writer,
		idempotency: idempotency,
	}
}

func (p *LedgerEventProcessor) GetType() string {
	return "ledger-event"
}

// Process mirrors one ledger event into the spreadsheet with idempotency
// guarantees. Returning nil acks the message; returning an error nacks it so
// the queue retries and eventually dead-letters it.
func (p *LedgerEventProcessor) Process(ctx context.Context, queueMessage *queue.Message) error {
	var event model.LedgerEvent
	if err := json.Unmarshal(queueMessage.Data, &event); err != nil {
		logger.Error("failed to unmarshal ledger event", "error", err)
		return err // malformed payload goes to the DLQ
	}

	eventKey := event.Key()

	expCtx, err := p.idempotency.AcquireExportLock(ctx, eventKey)
	if err != nil {
		if errors.Is(err, ErrAlreadyExported) {
			logger.Info("event already exported, skipping", "event_key", eventKey)
			prom.IncCounter(prom.SystemExport, prom.MetricEventsDuplicate)
			return nil
		}
		if errors.Is(err, ErrMaxRetriesExceeded) {
			// Give up on this event. The mirror is best-effort and the
			// database still has the truth.
			logger.Error("dropping event after max export retries", "event_key", eventKey)
			prom.IncCounterVec(prom.SystemExport, prom.MetricEventsFailed, string(event.Type))
			return nil
		}
		if errors.Is(err, ErrLockAcquireFailed) {
			return errors.New("export lock held by another consumer")
		}
		logger.Error("failed to acquire export lock", "event_key", eventKey, "error", err)
		return err
	}

	defer func() {
		if expCtx.lockAcquired {
			p.idempotency.ReleaseLock(ctx, expCtx)
		}
	}()

	start := time.Now()
	switch event.Type {
	case model.LedgerEventSaleRecorded:
		err = p.writer.AppendSale(ctx, event.Sale, event.Transfers)
	case model.LedgerEventTransferCompleted:
		err = p.writer.AppendCompletion(ctx, event.Transfer)
	default:
		// An unknown type will not succeed on retry either.
		logger.Warn("unknown ledger event type, acking", "type", string(event.Type))
		return nil
	}
	if err != nil {
		logger.Error("failed to mirror event", "event_key", eventKey, "error", err)
		if markErr := p.idempotency.MarkFailure(ctx, expCtx, err); markErr != nil {
			logger.Error("failed to mark export failure", "event_key", eventKey, "error", markErr)
		}
		return err
	}

	prom.IncCounterVec(prom.SystemExport, prom.MetricEventsExported, string(event.Type))
	prom.AddHistogram(prom.SystemExport, prom.MetricExportDuration, time.Since(start).Seconds())

	if markErr := p.idempotency.MarkExported(ctx, expCtx); markErr != nil {
		logger.Error("failed to mark event exported", "event_key", eventKey, "error", markErr)
		// The row is already written. Ack anyway and rely on the marker TTL.
	}

	logger.Info("event mirrored",
		"event_key", eventKey,
		"retry_count", expCtx.RetryCount,
		"is_retry", expCtx.IsRetry)
	return nil
}
