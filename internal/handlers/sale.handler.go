package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/shopspring/decimal"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/services"
	xhttp "github.com/sjsneakers/resale-gateway/pkg/http"
)

type SaleService interface {
	Record(ctx context.Context, p model.SaleCreateRequest) (*model.Sale, error)
	Get(ctx context.Context, id string) (*model.Sale, error)
	List(ctx context.Context, f model.SaleFilter) ([]*model.Sale, int64, error)
}

type SaleHandler struct {
	svc SaleService
}

func RegisterSaleRoutes(e *router.Group, h *SaleHandler) {
	e.POST("/sales", h.CreateSale)
	e.GET("/sales", h.ListSales)
	e.GET("/sales/{id}", h.GetSale)
}

func NewSaleHandler(saleService SaleService) *SaleHandler {
	return &SaleHandler{
		svc: saleService,
	}
}

type createSaleRequest struct {
	ItemID         string          `json:"item_id"`
	Amount         decimal.Decimal `json:"amount"`
	Date           *time.Time      `json:"date"`
	SoldBy         string          `json:"sold_by"`
	Buyer          string          `json:"buyer"`
	Platform       string          `json:"platform"`
	PaymentMethod  string          `json:"payment_method"`
	ShippingStatus string          `json:"shipping_status"`
	TrackingNumber string          `json:"tracking_number"`
	Notes          string          `json:"notes"`
}

type saleListResponse struct {
	Items []*model.Sale `json:"items"`
	Total int64         `json:"total"`
}

func (h *SaleHandler) CreateSale(ctx *xhttp.RequestCtx) {
	var req createSaleRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	p := model.SaleCreateRequest{
		ItemID:         req.ItemID,
		Amount:         req.Amount,
		SoldBy:         req.SoldBy,
		Buyer:          req.Buyer,
		Platform:       req.Platform,
		PaymentMethod:  req.PaymentMethod,
		ShippingStatus: req.ShippingStatus,
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
	}
	if req.Date != nil {
		p.Date = *req.Date
	}

	sale, err := h.svc.Record(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			writeError(ctx, 404, err.Error())
		case errors.Is(err, services.ErrItemNotInStock):
			writeError(ctx, 409, err.Error())
		default:
			writeError(ctx, 400, err.Error())
		}
		return
	}
	writeJSON(ctx, 201, sale)
}

func (h *SaleHandler) GetSale(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	sale, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, sale)
}

func (h *SaleHandler) ListSales(ctx *xhttp.RequestCtx) {
	var f model.SaleFilter

	if v := query(ctx, "item_id"); v != "" {
		f.ItemID = &v
	}
	if v := query(ctx, "sold_by"); v != "" {
		f.SoldBy = &v
	}
	if v := query(ctx, "platform"); v != "" {
		f.Platform = &v
	}
	if v := query(ctx, "shipping_status"); v != "" {
		f.ShippingStatus = &v
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.From = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.To = &t
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, saleListResponse{Items: items, Total: total})
}
