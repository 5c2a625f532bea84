// Package sheets mirrors ledger writes into the business's Google
// spreadsheet. The sheet is a convenience view; the database stays
// authoritative.
package sheets

import "github.com/pkg/errors"

type Config struct {
	SpreadsheetID      string
	ServiceAccountPath string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	SalesSheet         string
	MoneyFlowSheet     string
}

func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return errors.New("sheets: spreadsheet id is required")
	}
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return errors.New("sheets: provide a service account path or OAuth2 credentials")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.SalesSheet == "" {
		c.SalesSheet = "Sales"
	}
	if c.MoneyFlowSheet == "" {
		c.MoneyFlowSheet = "Money Flow"
	}
	return c
}
