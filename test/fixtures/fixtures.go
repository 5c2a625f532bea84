package fixtures

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
)

var (
	TestItemInStock = model.Item{
		ID:       "Shoes-Nike-10-Red-1",
		Category: "Shoes",
		Brand:    "Nike",
		Size:     "10",
		Color:    "Red",
		Cost:     decimal.NewFromInt(40),
		Status:   model.ItemStatusInStock,
	}

	TestItemSold = model.Item{
		ID:       "Shoes-Adidas-9-Black-2",
		Category: "Shoes",
		Brand:    "Adidas",
		Size:     "9",
		Color:    "Black",
		Cost:     decimal.NewFromInt(55),
		Status:   model.ItemStatusSold,
	}
)

func NewTestItemCreateRequest(category, brand, size, color string) model.ItemCreateRequest {
	return model.ItemCreateRequest{
		Category: category,
		Brand:    brand,
		Size:     size,
		Color:    color,
		Cost:     decimal.NewFromInt(40),
	}
}

func NewTestSaleCreateRequest(itemID, paymentMethod string, amount decimal.Decimal) model.SaleCreateRequest {
	return model.SaleCreateRequest{
		ItemID:        itemID,
		Amount:        amount,
		SoldBy:        "Zach",
		PaymentMethod: paymentMethod,
	}
}

var (
	KnownPaymentMethods = []string{
		"Depop",
		"eBay",
		"Cash (Zach)",
		"Cash (Adi)",
		"Zelle (Marc)",
		"Zelle (Nicole)",
	}

	UnknownPaymentMethods = []string{
		"Venmo",
		"PayPal",
		"Check",
	}
)

func SaleCreateRequestDepop(itemID string) model.SaleCreateRequest {
	return NewTestSaleCreateRequest(itemID, "Depop", decimal.NewFromInt(100))
}

func SaleCreateRequestCash(itemID string) model.SaleCreateRequest {
	return NewTestSaleCreateRequest(itemID, "Cash (Zach)", decimal.NewFromInt(250))
}

func SaleCreateRequestUnknownMethod(itemID string) model.SaleCreateRequest {
	return NewTestSaleCreateRequest(itemID, "Venmo", decimal.NewFromInt(75))
}

func SaleCreateRequestMissingAmount(itemID string) model.SaleCreateRequest {
	return model.SaleCreateRequest{
		ItemID:        itemID,
		SoldBy:        "Zach",
		PaymentMethod: "Depop",
	}
}

func TransferFilterBySale(saleID string) model.TransferFilter {
	return model.TransferFilter{
		SaleID: &saleID,
		Limit:  50,
		Offset: 0,
	}
}

func TransferFilterPending() model.TransferFilter {
	return model.TransferFilter{
		Statuses: []model.TransferStatus{model.TransferStatusPending},
		Limit:    50,
		Offset:   0,
	}
}

func SaleFilterByTimeRange(from, to time.Time) model.SaleFilter {
	return model.SaleFilter{
		From:   &from,
		To:     &to,
		Limit:  50,
		Offset: 0,
	}
}
