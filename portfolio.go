package holdings

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AssetType tags the nature of an investment position.
type AssetType string

const (
	Debt         AssetType = "debt"
	Equity       AssetType = "equity" // non-listed stock
	Convertible  AssetType = "convertible"
	ListedEquity AssetType = "listedequity"
	OtherAsset   AssetType = "other"
)

// UnitKind tags how an asset's quantity is denominated.
type UnitKind string

const (
	Shares  UnitKind = "shares"
	Percent UnitKind = "percent"
	Amount  UnitKind = "amount"
)

// RatePoint is one recorded FX rate: the value of one unit of the currency,
// expressed in the portfolio's base currency, effective from Date onward.
type RatePoint struct {
	Date DateTime        `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// Currency identifies a currency by ISO code and carries its recorded rate
// history, ordered by date. The history is a step function: the effective
// rate on any date is the latest point at or before it.
//
// A Currency is shared by reference: the portfolio, its base-currency field
// and every entity denominated in it all point at the same object, so a rate
// edit is visible everywhere at once.
type Currency struct {
	ISO   string      `json:"iso"`
	Rates []RatePoint `json:"rates"`
}

// RateOn returns the effective rate for the given date: the rate of the
// latest point with date <= on, or 1 if no point precedes it.
func (c *Currency) RateOn(on DateTime) decimal.Decimal {
	rate := decimal.NewFromInt(1)
	for _, p := range c.Rates {
		if p.Date.After(on) {
			break
		}
		rate = p.Rate
	}
	return rate
}

// AddRate inserts a rate point, keeping the history ordered by date.
func (c *Currency) AddRate(p RatePoint) {
	c.Rates = append(c.Rates, p)
	sort.SliceStable(c.Rates, func(i, j int) bool { return c.Rates[i].Date.Before(c.Rates[j].Date) })
}

// DeleteRate removes the rate point at index i. It returns false and leaves
// the history unchanged when i is out of range.
func (c *Currency) DeleteRate(i int) bool {
	var ok bool
	c.Rates, ok = deleteAt(c.Rates, i)
	return ok
}

// Investment is a dated cash-flow line against an asset. Units and Value are
// signed quantity and cash deltas: a purchase deploys capital (negative),
// a sale returns it (positive). FXRate is an optional snapshot of the rate
// to the base currency on the valuta date; nil means 1. The same shape
// records capital commitments, tracked separately from drawn capital.
type Investment struct {
	Valuta      DateTime         `json:"valuta"`
	Description string           `json:"description"`
	Units       decimal.Decimal  `json:"units"`
	Value       decimal.Decimal  `json:"value"`
	FXRate      *decimal.Decimal `json:"fxrate,omitempty"`
	Doc         string           `json:"doc"`
}

// BaseValue returns the value converted with the recorded rate snapshot,
// defaulting to 1 when none was recorded.
func (inv Investment) BaseValue() decimal.Decimal {
	if inv.FXRate == nil {
		return inv.Value
	}
	return inv.Value.Mul(*inv.FXRate)
}

// Revenue is a dated cash-flow line with no unit delta: positive for a
// distribution, dividend or interest received, negative for a cost or fee.
type Revenue struct {
	Valuta      DateTime         `json:"valuta"`
	Description string           `json:"description"`
	Value       decimal.Decimal  `json:"value"`
	FXRate      *decimal.Decimal `json:"fxrate,omitempty"`
	Doc         string           `json:"doc"`
}

// BaseValue returns the value converted with the recorded rate snapshot,
// defaulting to 1 when none was recorded.
func (r Revenue) BaseValue() decimal.Decimal {
	if r.FXRate == nil {
		return r.Value
	}
	return r.Value.Mul(*r.FXRate)
}

// Valuation is an explicit mark: a unit price observed on a date.
type Valuation struct {
	Date      DateTime        `json:"date"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Doc       string          `json:"doc"`
}

// Asset is one investment position held by an entity. Entity is a live
// back-reference to the owner; it is never serialized and is restored by the
// codec's relink pass.
type Asset struct {
	Name        string       `json:"name"`
	Type        AssetType    `json:"type"`
	Unit        UnitKind     `json:"unit"`
	Investments []Investment `json:"investments"`
	Revenues    []Revenue    `json:"revenues"`
	Valuations  []Valuation  `json:"valuations"`
	Commitments []Investment `json:"commitments"`
	Entity      *Entity      `json:"-"`
}

// AddInvestment appends a cash-flow line to the asset.
func (a *Asset) AddInvestment(inv Investment) { a.Investments = append(a.Investments, inv) }

// DeleteInvestment removes the investment at index i, reporting failure on
// an out-of-range index instead of panicking.
func (a *Asset) DeleteInvestment(i int) bool {
	var ok bool
	a.Investments, ok = deleteAt(a.Investments, i)
	return ok
}

// AddRevenue appends a revenue line to the asset.
func (a *Asset) AddRevenue(r Revenue) { a.Revenues = append(a.Revenues, r) }

// DeleteRevenue removes the revenue at index i.
func (a *Asset) DeleteRevenue(i int) bool {
	var ok bool
	a.Revenues, ok = deleteAt(a.Revenues, i)
	return ok
}

// AddValuation appends an explicit mark to the asset.
func (a *Asset) AddValuation(v Valuation) { a.Valuations = append(a.Valuations, v) }

// DeleteValuation removes the valuation at index i.
func (a *Asset) DeleteValuation(i int) bool {
	var ok bool
	a.Valuations, ok = deleteAt(a.Valuations, i)
	return ok
}

// AddCommitment appends a capital commitment line to the asset.
func (a *Asset) AddCommitment(c Investment) { a.Commitments = append(a.Commitments, c) }

// DeleteCommitment removes the commitment at index i.
func (a *Asset) DeleteCommitment(i int) bool {
	var ok bool
	a.Commitments, ok = deleteAt(a.Commitments, i)
	return ok
}

// Entity is a legal holding vehicle. Currency points into the owning
// portfolio's currency list; the codec serializes it as its ISO code and
// relinks it on load.
type Entity struct {
	Name      string
	Address   string
	Country   string
	Assets    []*Asset
	Currency  *Currency
	DocFolder string

	// currencyCode carries the ISO code between decode and relink.
	currencyCode string
}

// AddAsset appends an asset and sets its back-reference to e.
func (e *Entity) AddAsset(a *Asset) *Asset {
	a.Entity = e
	e.Assets = append(e.Assets, a)
	return a
}

// DeleteAsset removes the asset at index i.
func (e *Entity) DeleteAsset(i int) bool {
	var ok bool
	e.Assets, ok = deleteAt(e.Assets, i)
	return ok
}

// Portfolio is the root aggregate of a document: a display name, the holding
// entities, and the currency table. BaseCurrency is reference-identical to
// one element of Currencies, never merely equal by code. DocRoot is the
// folder the document was loaded from; it is runtime-only.
type Portfolio struct {
	DocRoot      string
	Name         string
	Entities     []*Entity
	BaseCurrency *Currency
	Currencies   []*Currency
}

// NewPortfolio creates an empty portfolio whose base currency has the given
// ISO code and an empty rate history.
func NewPortfolio(name, baseISO string) *Portfolio {
	base := &Currency{ISO: baseISO}
	return &Portfolio{
		Name:         name,
		BaseCurrency: base,
		Currencies:   []*Currency{base},
	}
}

// Currency returns the currency with the given ISO code, or nil.
func (p *Portfolio) Currency(iso string) *Currency {
	for _, c := range p.Currencies {
		if c.ISO == iso {
			return c
		}
	}
	return nil
}

// ensureCurrency returns the currency with the given ISO code, creating one
// with an empty rate history when the document has none.
func (p *Portfolio) ensureCurrency(iso string) *Currency {
	if c := p.Currency(iso); c != nil {
		return c
	}
	c := &Currency{ISO: iso}
	p.Currencies = append(p.Currencies, c)
	return c
}

// AddCurrency registers a currency, returning the already registered object
// when the ISO code is present so callers always hold the shared instance.
func (p *Portfolio) AddCurrency(c *Currency) *Currency {
	if existing := p.Currency(c.ISO); existing != nil {
		return existing
	}
	p.Currencies = append(p.Currencies, c)
	return c
}

// DeleteCurrency removes the currency at index i.
func (p *Portfolio) DeleteCurrency(i int) bool {
	var ok bool
	p.Currencies, ok = deleteAt(p.Currencies, i)
	return ok
}

// AddEntity appends an entity to the portfolio.
func (p *Portfolio) AddEntity(e *Entity) *Entity {
	p.Entities = append(p.Entities, e)
	return e
}

// DeleteEntity removes the entity at index i.
func (p *Portfolio) DeleteEntity(i int) bool {
	var ok bool
	p.Entities, ok = deleteAt(p.Entities, i)
	return ok
}

// Assets iterates over every asset of every entity, in document order.
func (p *Portfolio) Assets(yield func(*Entity, *Asset) bool) {
	for _, e := range p.Entities {
		for _, a := range e.Assets {
			if !yield(e, a) {
				return
			}
		}
	}
}

// deleteAt removes the element at index i. Out-of-range indices are a
// silent, locally recoverable failure: the slice is returned unchanged with
// ok false, and no panic ever crosses the UI boundary.
func deleteAt[T any](list []T, i int) (out []T, ok bool) {
	if i < 0 || i >= len(list) {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}
