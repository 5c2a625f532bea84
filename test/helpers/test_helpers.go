package helpers

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/repository"
	"github.com/sjsneakers/resale-gateway/pkg/pg"
	"github.com/sjsneakers/resale-gateway/pkg/redis"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.ItemEntity{},
		&repository.SaleEntity{},
		&repository.TransferEntity{},
		&repository.RouteHopEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	adapter, err := redis.NewRedisAdapter("test", "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func SeedDefaultRoutes(t *testing.T, db *pg.DB) {
	ctx := context.Background()
	for _, h := range model.DefaultRoutes() {
		err := db.Write(ctx).Create(&repository.RouteHopEntity{
			Method:           h.Method,
			Step:             h.Step,
			FromLocation:     h.From,
			ToLocation:       h.To,
			ResponsibleParty: h.ResponsibleParty,
		}).Error
		require.NoError(t, err)
	}
}

func CreateTestItem(t *testing.T, db *pg.DB, id string, status model.ItemStatus) *repository.ItemEntity {
	ctx := context.Background()
	item := &repository.ItemEntity{
		ID:            id,
		Category:      "Shoes",
		Brand:         "Nike",
		Size:          "10",
		Color:         "Red",
		Cost:          decimal.NewFromInt(40),
		DatePurchased: time.Now(),
		Status:        string(status),
	}
	err := db.Write(ctx).Create(item).Error
	require.NoError(t, err)
	return item
}

func CreateTestSale(t *testing.T, db *pg.DB, id, itemID, paymentMethod string, amount decimal.Decimal) *repository.SaleEntity {
	ctx := context.Background()
	sale := &repository.SaleEntity{
		ID:            id,
		ItemID:        itemID,
		Amount:        amount,
		Date:          time.Now(),
		SoldBy:        "Zach",
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
	}
	err := db.Write(ctx).Create(sale).Error
	require.NoError(t, err)
	return sale
}

func CreateTestTransfer(t *testing.T, db *pg.DB, id, saleID, source, destination string, amount decimal.Decimal, status model.TransferStatus) *repository.TransferEntity {
	ctx := context.Background()
	tr := &repository.TransferEntity{
		ID:          id,
		SaleID:      saleID,
		Amount:      amount,
		Date:        time.Now(),
		Source:      source,
		Destination: destination,
		Status:      string(status),
	}
	err := db.Write(ctx).Create(tr).Error
	require.NoError(t, err)
	return tr
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func AssertEventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	if !WaitForCondition(t, timeout, condition) {
		t.Fatal(msg)
	}
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func Ptr[T any](v T) *T {
	return &v
}
