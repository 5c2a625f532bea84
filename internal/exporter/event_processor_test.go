package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSheetWriter struct {
	sales       int
	completions int
	failWith    error
}

func (w *recordingSheetWriter) AppendSale(ctx context.Context, sale *model.Sale, transfers []*model.Transfer) error {
	if w.failWith != nil {
		return w.failWith
	}
	w.sales++
	return nil
}

func (w *recordingSheetWriter) AppendCompletion(ctx context.Context, transfer *model.Transfer) error {
	if w.failWith != nil {
		return w.failWith
	}
	w.completions++
	return nil
}

func queueMessage(t *testing.T, event model.LedgerEvent) *queue.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return &queue.Message{ID: "1-0", Data: data, Timestamp: time.Now()}
}

func saleEvent() model.LedgerEvent {
	by := model.ResponsibleAuto
	at := time.Now().UTC()
	return model.LedgerEvent{
		Type:       model.LedgerEventSaleRecorded,
		OccurredAt: at,
		Sale: &model.Sale{
			ID:            "sale-1",
			ItemID:        "Shoes-Nike-10-Red-4",
			Amount:        decimal.NewFromInt(100),
			Date:          at,
			PaymentMethod: "Depop",
		},
		Transfers: []*model.Transfer{
			{ID: "sale-1-T1", SaleID: "sale-1", Status: model.TransferStatusCompleted, CompletedAt: &at, CompletedBy: &by},
			{ID: "sale-1-T2", SaleID: "sale-1", Status: model.TransferStatusCompleted, CompletedAt: &at, CompletedBy: &by},
			{ID: "sale-1-T3", SaleID: "sale-1", Status: model.TransferStatusPending},
		},
	}
}

func TestLedgerEventProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("mirrors a recorded sale", func(t *testing.T) {
		writer := &recordingSheetWriter{}
		idem := NewIdempotencyService(newMockRedisAdapter(), DefaultIdempotencyConfig())
		p := NewLedgerEventProcessor(writer, idem)

		err := p.Process(ctx, queueMessage(t, saleEvent()))
		require.NoError(t, err)
		assert.Equal(t, 1, writer.sales)

		exported, err := idem.IsExported(ctx, saleEvent().Key())
		require.NoError(t, err)
		assert.True(t, exported)
	})

	t.Run("redelivery is deduplicated", func(t *testing.T) {
		writer := &recordingSheetWriter{}
		idem := NewIdempotencyService(newMockRedisAdapter(), DefaultIdempotencyConfig())
		p := NewLedgerEventProcessor(writer, idem)

		msg := queueMessage(t, saleEvent())
		require.NoError(t, p.Process(ctx, msg))
		require.NoError(t, p.Process(ctx, msg))
		assert.Equal(t, 1, writer.sales)
	})

	t.Run("mirrors a completion", func(t *testing.T) {
		writer := &recordingSheetWriter{}
		idem := NewIdempotencyService(newMockRedisAdapter(), DefaultIdempotencyConfig())
		p := NewLedgerEventProcessor(writer, idem)

		by := "Marc"
		at := time.Now().UTC()
		event := model.LedgerEvent{
			Type:       model.LedgerEventTransferCompleted,
			OccurredAt: at,
			Transfer: &model.Transfer{
				ID:          "sale-1-T3",
				SaleID:      "sale-1",
				Status:      model.TransferStatusCompleted,
				CompletedAt: &at,
				CompletedBy: &by,
			},
		}
		require.NoError(t, p.Process(ctx, queueMessage(t, event)))
		assert.Equal(t, 1, writer.completions)
	})

	t.Run("write failure nacks for retry", func(t *testing.T) {
		writer := &recordingSheetWriter{failWith: errors.New("quota exceeded")}
		idem := NewIdempotencyService(newMockRedisAdapter(), DefaultIdempotencyConfig())
		p := NewLedgerEventProcessor(writer, idem)

		msg := queueMessage(t, saleEvent())
		err := p.Process(ctx, msg)
		assert.Error(t, err)

		count, err := idem.GetRetryCount(ctx, saleEvent().Key())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		writer := &recordingSheetWriter{failWith: errors.New("quota exceeded")}
		config := DefaultIdempotencyConfig()
		config.MaxRetries = 2
		idem := NewIdempotencyService(newMockRedisAdapter(), config)
		p := NewLedgerEventProcessor(writer, idem)

		msg := queueMessage(t, saleEvent())
		for i := 0; i < config.MaxRetries; i++ {
			require.Error(t, p.Process(ctx, msg))
		}

		// Retry budget spent, the event is acked and dropped.
		assert.NoError(t, p.Process(ctx, msg))
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		writer := &recordingSheetWriter{}
		idem := NewIdempotencyService(newMockRedisAdapter(), DefaultIdempotencyConfig())
		p := NewLedgerEventProcessor(writer, idem)

		msg := &queue.Message{ID: "1-1", Data: []byte("{not json")}
		assert.Error(t, p.Process(ctx, msg))
	})
}
