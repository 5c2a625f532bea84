package model

import (
	"errors"
	"sort"
)

// ResponsibleAuto marks a hop that completes itself at creation time with no
// human action (money landing in a tracked account via an automated rail).
const ResponsibleAuto = "Auto"

// VaultLocation is the final destination representing consolidated business
// funds.
const VaultLocation = "San Jose Sneakers Vault"

// Sentinel source locations represent money entering the tracked system.
// Transfers out of a sentinel never debit a balance.
const (
	LocationCustomer       = "Customer"
	LocationOpeningBalance = "Opening Balance"
	LocationManualAdjust   = "Manual Adjustment"
	LocationCorrection     = "Balance Correction"
)

var sentinelSources = map[string]struct{}{
	LocationCustomer:       {},
	LocationOpeningBalance: {},
	LocationManualAdjust:   {},
	LocationCorrection:     {},
}

// IsSentinelSource reports whether a location is an entry point rather than a
// tracked holder of money.
func IsSentinelSource(location string) bool {
	_, ok := sentinelSources[location]
	return ok
}

var ErrUnknownPaymentMethod = errors.New("no route configured for payment method")

// RouteHop is one edge of a payment method's fixed settlement path. Step is
// 1-based and contiguous within a method. The table is trusted as configured;
// hop chaining (hop i's To equals hop i+1's From) is convention, not enforced.
type RouteHop struct {
	Method           string `json:"method"             db:"method"             gorm:"column:method;not null;index"`
	Step             int    `json:"step"               db:"step"               gorm:"column:step;not null"`
	From             string `json:"from"               db:"from_location"      gorm:"column:from_location;not null"`
	To               string `json:"to"                 db:"to_location"        gorm:"column:to_location;not null"`
	ResponsibleParty string `json:"responsible_party"  db:"responsible_party"  gorm:"column:responsible_party;not null"`
}

func (RouteHop) TableName() string { return "route_hops" }

// RouteTable is an immutable lookup over the configured routing hops. Built
// once at startup; safe for concurrent reads.
type RouteTable struct {
	byMethod map[string][]RouteHop
	byEdge   map[[2]string]string
}

func NewRouteTable(hops []RouteHop) *RouteTable {
	t := &RouteTable{
		byMethod: make(map[string][]RouteHop),
		byEdge:   make(map[[2]string]string),
	}
	for _, h := range hops {
		t.byMethod[h.Method] = append(t.byMethod[h.Method], h)
		t.byEdge[[2]string{h.From, h.To}] = h.ResponsibleParty
	}
	for m := range t.byMethod {
		hs := t.byMethod[m]
		sort.Slice(hs, func(i, j int) bool { return hs[i].Step < hs[j].Step })
	}
	return t
}

// HopsFor returns the ordered hops for a payment method, or
// ErrUnknownPaymentMethod if none are configured.
func (t *RouteTable) HopsFor(method string) ([]RouteHop, error) {
	hops, ok := t.byMethod[method]
	if !ok || len(hops) == 0 {
		return nil, ErrUnknownPaymentMethod
	}
	return hops, nil
}

// ResponsibleFor looks up the responsible party for a source/destination pair.
func (t *RouteTable) ResponsibleFor(from, to string) (string, bool) {
	p, ok := t.byEdge[[2]string{from, to}]
	return p, ok
}

// Methods returns the configured payment method names, sorted.
func (t *RouteTable) Methods() []string {
	out := make([]string, 0, len(t.byMethod))
	for m := range t.byMethod {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// DefaultRoutes is the hand-authored routing table for the business. The
// seed migration mirrors this data; tests and dev mode use it directly.
func DefaultRoutes() []RouteHop {
	return []RouteHop{
		{Method: "Depop", Step: 1, From: LocationCustomer, To: "Depop Account", ResponsibleParty: ResponsibleAuto},
		{Method: "Depop", Step: 2, From: "Depop Account", To: "SoFi Savings", ResponsibleParty: ResponsibleAuto},
		{Method: "Depop", Step: 3, From: "SoFi Savings", To: VaultLocation, ResponsibleParty: "Marc/Nicole"},

		{Method: "eBay", Step: 1, From: LocationCustomer, To: "eBay Account", ResponsibleParty: ResponsibleAuto},
		{Method: "eBay", Step: 2, From: "eBay Account", To: "SoFi Savings", ResponsibleParty: ResponsibleAuto},
		{Method: "eBay", Step: 3, From: "SoFi Savings", To: VaultLocation, ResponsibleParty: "Marc/Nicole"},

		{Method: "Cash (Zach)", Step: 1, From: LocationCustomer, To: "Zach Cash", ResponsibleParty: "Zach"},
		{Method: "Cash (Zach)", Step: 2, From: "Zach Cash", To: "Zach Chase", ResponsibleParty: "Zach"},
		{Method: "Cash (Zach)", Step: 3, From: "Zach Chase", To: "SoFi Checking", ResponsibleParty: "Zach"},
		{Method: "Cash (Zach)", Step: 4, From: "SoFi Checking", To: "SoFi Savings", ResponsibleParty: "Marc/Nicole"},
		{Method: "Cash (Zach)", Step: 5, From: "SoFi Savings", To: VaultLocation, ResponsibleParty: "Marc/Nicole"},

		{Method: "Cash (Adi)", Step: 1, From: LocationCustomer, To: "Adi Cash", ResponsibleParty: "Adi"},
		{Method: "Cash (Adi)", Step: 2, From: "Adi Cash", To: "Adi Chase", ResponsibleParty: "Adi"},
		{Method: "Cash (Adi)", Step: 3, From: "Adi Chase", To: "SoFi Checking", ResponsibleParty: "Adi"},
		{Method: "Cash (Adi)", Step: 4, From: "SoFi Checking", To: "SoFi Savings", ResponsibleParty: "Marc/Nicole"},
		{Method: "Cash (Adi)", Step: 5, From: "SoFi Savings", To: VaultLocation, ResponsibleParty: "Marc/Nicole"},

		{Method: "Zelle (Marc)", Step: 1, From: LocationCustomer, To: "Marc Chase", ResponsibleParty: ResponsibleAuto},
		{Method: "Zelle (Marc)", Step: 2, From: "Marc Chase", To: "SoFi Savings", ResponsibleParty: "Marc"},
		{Method: "Zelle (Marc)", Step: 3, From: "SoFi Savings", To: VaultLocation, ResponsibleParty: "Marc/Nicole"},

		{Method: "Zelle (Nicole)", Step: 1, From: LocationCustomer, To: "Nicole Chase", ResponsibleParty: ResponsibleAuto},
		{Method: "Zelle (Nicole)", Step: 2, From: "Nicole Chase", To: "SoFi Savings", ResponsibleParty: "Nicole"},
		{Method: "Zelle (Nicole)", Step: 3, From: "SoFi Savings", To: VaultLocation, ResponsibleParty: "Marc/Nicole"},
	}
}
