// Package holdings implements the analytics engine behind a private-markets
// portfolio tracker. A portfolio document records legal holding entities, the
// assets they hold, the cash movements against each asset (capital calls,
// distributions, commitments), point-in-time valuations, and multi-currency
// FX history.
//
// The core functionalities are:
//   - Document Model: an in-memory reference graph of currencies, entities
//     and assets, mutated only through explicit add/delete operations.
//   - Codec: identity-preserving whole-document JSON (de)serialization.
//     Currencies are deduplicated on the wire and relinked on load so that
//     every reference to an ISO code resolves to the same object.
//   - Reports: a time-series generator turning irregular transaction events
//     into gap-filled yearly or quarterly rows with running unit counts and
//     mark-to-market valuation, plus a cross-portfolio yearly roll-up.
//   - XIRR: a two-stage root-finder (Newton-Raphson with bisection fallback)
//     computing the annualized return over irregularly dated cash flows.
//   - FX Rates: an aggregator that determines the date span a currency needs
//     to cover and downsamples a daily rate series to the document's
//     recording frequency.
//
// This package serves as the foundational logic for the `hld` command-line
// tool; reports and solvers never mutate the graph they read.
package holdings
