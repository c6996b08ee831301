// Package rates keeps currency exchange rates current.
//
// A Refresher runs as a scheduled job: it downloads a JSON feed, extracts
// the rates with gjson paths, rebases them onto the catalog's reference
// currency, writes them through catalog.PostgresCurrencies.UpdateRates and
// invalidates cached currency snapshots.
package rates
