package model

import "github.com/shopspring/decimal"

// DashboardTransfer is a transfer annotated for the money-flow page: who has
// to act, and whether this is the next actionable hop of its sale.
type DashboardTransfer struct {
	Transfer
	ResponsibleParty string `json:"responsible_party"`
	Actionable       bool   `json:"actionable"`
}

// Dashboard is the derived view over the full transfer log. Balances count
// Completed transfers only; pending money sits at the last completed hop's
// destination until the next hop completes.
type Dashboard struct {
	Balances           map[string]decimal.Decimal `json:"balances"`
	PendingTransfers   []DashboardTransfer        `json:"pending_transfers"`
	CompletedTransfers []DashboardTransfer        `json:"completed_transfers"`
	TotalInTransit     decimal.Decimal            `json:"total_in_transit"`
	TotalInVault       decimal.Decimal            `json:"total_in_vault"`
}

func EmptyDashboard() *Dashboard {
	return &Dashboard{
		Balances:           make(map[string]decimal.Decimal),
		PendingTransfers:   []DashboardTransfer{},
		CompletedTransfers: []DashboardTransfer{},
		TotalInTransit:     decimal.Zero,
		TotalInVault:       decimal.Zero,
	}
}
