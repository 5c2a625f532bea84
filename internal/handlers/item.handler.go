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

type InventoryService interface {
	Create(ctx context.Context, p model.ItemCreateRequest) (*model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	LookupByUPC(ctx context.Context, upc string) (*model.Item, error)
	Update(ctx context.Context, id string, p model.ItemUpdateRequest) (*model.Item, error)
	List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error)
}

type ItemHandler struct {
	svc InventoryService
}

func RegisterItemRoutes(e *router.Group, h *ItemHandler) {
	e.POST("/items", h.CreateItem)
	e.GET("/items", h.ListItems)
	e.GET("/items/lookup", h.LookupItem)
	e.GET("/items/{id}", h.GetItem)
	e.PUT("/items/{id}", h.UpdateItem)
}

func NewItemHandler(inventoryService InventoryService) *ItemHandler {
	return &ItemHandler{
		svc: inventoryService,
	}
}

type createItemRequest struct {
	UPC           string          `json:"upc"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	Cost          decimal.Decimal `json:"cost"`
	DatePurchased *time.Time      `json:"date_purchased"`
	Location      string          `json:"location"`
	Notes         string          `json:"notes"`
}

type updateItemRequest struct {
	UPC      *string          `json:"upc"`
	Cost     *decimal.Decimal `json:"cost"`
	Location *string          `json:"location"`
	Notes    *string          `json:"notes"`
}

type itemListResponse struct {
	Items []*model.Item `json:"items"`
	Total int64         `json:"total"`
}

func (h *ItemHandler) CreateItem(ctx *xhttp.RequestCtx) {
	var req createItemRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	p := model.ItemCreateRequest{
		UPC:      req.UPC,
		Category: req.Category,
		Brand:    req.Brand,
		Size:     req.Size,
		Color:    req.Color,
		Cost:     req.Cost,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.DatePurchased != nil {
		p.DatePurchased = *req.DatePurchased
	}

	item, err := h.svc.Create(ctx, p)
	if err != nil {
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 201, item)
}

func (h *ItemHandler) GetItem(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	item, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, item)
}

func (h *ItemHandler) LookupItem(ctx *xhttp.RequestCtx) {
	item, err := h.svc.LookupByUPC(ctx, query(ctx, "upc"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, item)
}

func (h *ItemHandler) UpdateItem(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req updateItemRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	item, err := h.svc.Update(ctx, id, model.ItemUpdateRequest{
		UPC:      req.UPC,
		Cost:     req.Cost,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(ctx, 404, err.Error())
			return
		}
		writeError(ctx, 400, err.Error())
		return
	}
	writeJSON(ctx, 200, item)
}

func (h *ItemHandler) ListItems(ctx *xhttp.RequestCtx) {
	var f model.ItemFilter

	if v := query(ctx, "status"); v != "" {
		s := model.ItemStatus(v)
		f.Status = &s
	}
	if v := query(ctx, "category"); v != "" {
		f.Category = &v
	}
	if v := query(ctx, "brand"); v != "" {
		f.Brand = &v
	}
	if v := query(ctx, "upc"); v != "" {
		f.UPC = &v
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
	writeJSON(ctx, 200, itemListResponse{Items: items, Total: total})
}
