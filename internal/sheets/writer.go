package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/sjsneakers/resale-gateway/internal/model"
	"github.com/sjsneakers/resale-gateway/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const dateLayout = "2006-01-02"

// Writer appends ledger rows to the configured spreadsheet.
type Writer struct {
	service *sheets.Service
	config  Config
}

func NewWriter(ctx context.Context, config Config) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Writer{
		service: service,
		config:  config,
	}, nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("read service account key: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	return sheets.NewService(ctx, option.WithHTTPClient(httpClient))
}

// AppendSale writes one Sales row plus one Money Flow row per transfer.
func (w *Writer) AppendSale(ctx context.Context, sale *model.Sale, transfers []*model.Transfer) error {
	saleRow := []interface{}{
		sale.Date.Format(dateLayout),
		sale.ID,
		sale.ItemID,
		sale.Amount.StringFixed(2),
		sale.SoldBy,
		sale.Buyer,
		sale.Platform,
		sale.PaymentMethod,
		sale.ShippingStatus,
		sale.TrackingNumber,
		sale.Notes,
	}
	if err := w.append(ctx, w.config.SalesSheet, [][]interface{}{saleRow}); err != nil {
		return fmt.Errorf("append sale row: %w", err)
	}

	if len(transfers) == 0 {
		return nil
	}
	rows := make([][]interface{}, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, transferRow(t))
	}
	if err := w.append(ctx, w.config.MoneyFlowSheet, rows); err != nil {
		return fmt.Errorf("append transfer rows: %w", err)
	}
	return nil
}

// AppendCompletion writes a Money Flow row recording a completed transfer.
func (w *Writer) AppendCompletion(ctx context.Context, transfer *model.Transfer) error {
	if err := w.append(ctx, w.config.MoneyFlowSheet, [][]interface{}{transferRow(transfer)}); err != nil {
		return fmt.Errorf("append completion row: %w", err)
	}
	return nil
}

func transferRow(t *model.Transfer) []interface{} {
	completedAt := ""
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.Format(dateLayout)
	}
	completedBy := ""
	if t.CompletedBy != nil {
		completedBy = *t.CompletedBy
	}
	return []interface{}{
		t.ID,
		t.SaleID,
		t.Date.Format(dateLayout),
		t.Amount.StringFixed(2),
		t.Source,
		t.Destination,
		string(t.Status),
		completedAt,
		completedBy,
		t.Notes,
	}
}

func (w *Writer) append(ctx context.Context, sheet string, rows [][]interface{}) error {
	valueRange := &sheets.ValueRange{Values: rows}
	_, err := w.service.Spreadsheets.Values.
		Append(w.config.SpreadsheetID, sheet+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}
	logger.Debug("sheet rows appended", "sheet", sheet, "rows", len(rows))
	return nil
}
