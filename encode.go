package holdings

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts, units and rates are JSON numbers on the wire, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON emits the entity with its currency replaced by the ISO code.
// The full currency object, rate history included, lives once in the
// portfolio's top-level currency list.
func (e *Entity) MarshalJSON() ([]byte, error) {
	iso := ""
	if e.Currency != nil {
		iso = e.Currency.ISO
	}
	var w jsonObjectWriter
	w.Append("name", e.Name).
		Append("address", e.Address).
		Append("country", e.Country).
		Append("assets", e.Assets).
		Append("currency", iso).
		Append("docfolder", e.DocFolder)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes the entity, keeping the currency ISO code aside for
// the portfolio relink pass.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string   `json:"name"`
		Address   string   `json:"address"`
		Country   string   `json:"country"`
		Assets    []*Asset `json:"assets"`
		Currency  string   `json:"currency"`
		DocFolder string   `json:"docfolder"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Name = raw.Name
	e.Address = raw.Address
	e.Country = raw.Country
	e.Assets = raw.Assets
	e.DocFolder = raw.DocFolder
	e.currencyCode = raw.Currency
	return nil
}

// portfolioJSON is the wire shape of the document root. DocRoot is runtime
// state and never persisted.
type portfolioJSON struct {
	Entities     []*Entity   `json:"entities"`
	BaseCurrency *Currency   `json:"baseCurrency"`
	Currencies   []*Currency `json:"currencies"`
	Name         string      `json:"name"`
}

// EncodePortfolio writes the whole document as pretty-printed UTF-8 JSON.
// The in-memory reference graph flattens to an acyclic tree: entity
// currencies become ISO strings and asset back-references are dropped.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	wire := portfolioJSON{
		Entities:     p.Entities,
		BaseCurrency: p.BaseCurrency,
		Currencies:   p.Currencies,
		Name:         p.Name,
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode portfolio %q: %w", p.Name, err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// DecodePortfolio reads a document and restores the reference graph: the
// base currency resolves to the member of the currency list with the same
// ISO code (appended when the list is missing it), entity currency codes
// resolve to the shared currency objects (synthesizing a zero-history
// currency for unknown codes), and each asset points back at its owning
// entity. After decoding, every reference for a given ISO code is the same
// object instance.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var wire portfolioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("cannot decode portfolio document: %w", err)
	}
	if wire.BaseCurrency == nil {
		return nil, fmt.Errorf("cannot decode portfolio document: missing baseCurrency")
	}

	p := &Portfolio{
		Name:         wire.Name,
		Entities:     wire.Entities,
		BaseCurrency: wire.BaseCurrency,
		Currencies:   wire.Currencies,
	}

	// The document may predate the currency list or miss the base entry;
	// self-heal instead of failing.
	if match := p.Currency(p.BaseCurrency.ISO); match != nil {
		p.BaseCurrency = match
	} else {
		p.Currencies = append(p.Currencies, p.BaseCurrency)
	}

	for _, e := range p.Entities {
		e.Currency = p.ensureCurrency(e.currencyCode)
		e.currencyCode = ""
		for _, a := range e.Assets {
			a.Entity = e
		}
	}
	return p, nil
}
