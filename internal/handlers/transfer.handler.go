package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/internal/services"
	xhttp "github.com/sjsneakers/resale-gateway/pkg/http"
)

type SettlementService interface {
	ComputeDashboard(ctx context.Context) (*model.Dashboard, error)
	History(ctx context.Context, f model.TransferFilter, responsibleParty string) ([]model.DashboardTransfer, int64, error)
	Complete(ctx context.Context, p model.TransferCompleteRequest) (*model.Transfer, error)
}

type TransferHandler struct {
	svc SettlementService
}

func RegisterTransferRoutes(e *router.Group, h *TransferHandler) {
	e.GET("/dashboard", h.GetDashboard)
	e.GET("/transfers", h.ListTransfers)
	e.POST("/transfers/{id}/complete", h.CompleteTransfer)
}

func NewTransferHandler(settlementService SettlementService) *TransferHandler {
	return &TransferHandler{
		svc: settlementService,
	}
}

type completeTransferRequest struct {
	CompletedBy string `json:"completed_by"`
}

type dashboardResponse struct {
	*model.Dashboard
	Actionable map[string][]model.DashboardTransfer `json:"actionable"`
	Upcoming   map[string][]model.DashboardTransfer `json:"upcoming"`
}

type transferListResponse struct {
	Items []model.DashboardTransfer `json:"items"`
	Total int64                     `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransferHandler) GetDashboard(ctx *xhttp.RequestCtx) {
	d, err := h.svc.ComputeDashboard(ctx)
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, dashboardResponse{
		Dashboard:  d,
		Actionable: services.GroupActionable(d.PendingTransfers, true),
		Upcoming:   services.GroupActionable(d.PendingTransfers, false),
	})
}

func (h *TransferHandler) ListTransfers(ctx *xhttp.RequestCtx) {
	var f model.TransferFilter

	if v := query(ctx, "sale_id"); v != "" {
		f.SaleID = &v
	}
	if v := query(ctx, "status"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if parts[i] != "" {
				f.Statuses = append(f.Statuses, model.TransferStatus(parts[i]))
			}
		}
	}
	if v := query(ctx, "location"); v != "" {
		f.Location = &v
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

	items, total, err := h.svc.History(ctx, f, query(ctx, "responsible_party"))
	if err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, transferListResponse{Items: items, Total: total})
}

func (h *TransferHandler) CompleteTransfer(ctx *xhttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req completeTransferRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Complete(ctx, model.TransferCompleteRequest{
		TransferID:  id,
		CompletedBy: req.CompletedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransferNotFound):
			writeError(ctx, 404, err.Error())
		case errors.Is(err, services.ErrAlreadyCompleted):
			writeError(ctx, 409, err.Error())
		default:
			writeError(ctx, 400, err.Error())
		}
		return
	}
	writeJSON(ctx, 200, updated)
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
