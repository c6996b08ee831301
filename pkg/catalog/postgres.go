package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/db"
)

const localeColumns = `id, code, name, direction, position, is_active, is_default`

// PostgresLocales reads locales from the locales table.
type PostgresLocales struct {
	db db.Querier
}

// NewPostgresLocales returns a locale Lookup backed by PostgreSQL.
func NewPostgresLocales(q db.Querier) *PostgresLocales {
	return &PostgresLocales{db: q}
}

func (p *PostgresLocales) FindActive(ctx context.Context, code string) (Locale, error) {
	key := codeKey(code)
	if key == "" {
		return Locale{}, ErrNotFound
	}
	row := p.db.QueryRow(ctx,
		`SELECT `+localeColumns+` FROM locales
		 WHERE lower(replace(code, '_', '-')) = $1 AND is_active`, key)
	return one[Locale](scanLocale(row))
}

func (p *PostgresLocales) Default(ctx context.Context) (Locale, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+localeColumns+` FROM locales
		 WHERE is_active AND is_default
		 ORDER BY position, id LIMIT 1`)
	return one[Locale](scanLocale(row))
}

func (p *PostgresLocales) List(ctx context.Context) ([]Locale, error) {
	rows, err := p.db.Query(ctx, `SELECT `+localeColumns+` FROM locales ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list locales: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Locale, error) {
		return scanLocale(row)
	})
}

func scanLocale(row pgx.Row) (Locale, error) {
	var (
		l   Locale
		dir string
	)
	err := row.Scan(&l.ID, &l.Code, &l.Name, &dir, &l.Position, &l.IsActive, &l.IsDefault)
	l.Direction = Direction(dir)
	return l, err
}

const currencyColumns = `id, code, name, symbol, symbol_position, thousand_separator,
	decimal_separator, decimal_places, exchange_rate::text, position, is_active, is_default`

// PostgresCurrencies reads currencies from the currencies table.
type PostgresCurrencies struct {
	db db.Querier
}

// NewPostgresCurrencies returns a currency Lookup backed by PostgreSQL.
func NewPostgresCurrencies(q db.Querier) *PostgresCurrencies {
	return &PostgresCurrencies{db: q}
}

func (p *PostgresCurrencies) FindActive(ctx context.Context, code string) (Currency, error) {
	key := codeKey(code)
	if key == "" {
		return Currency{}, ErrNotFound
	}
	row := p.db.QueryRow(ctx,
		`SELECT `+currencyColumns+` FROM currencies
		 WHERE lower(code) = $1 AND is_active`, key)
	return one[Currency](scanCurrency(row))
}

func (p *PostgresCurrencies) Default(ctx context.Context) (Currency, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+currencyColumns+` FROM currencies
		 WHERE is_active AND is_default
		 ORDER BY position, id LIMIT 1`)
	return one[Currency](scanCurrency(row))
}

func (p *PostgresCurrencies) List(ctx context.Context) ([]Currency, error) {
	rows, err := p.db.Query(ctx, `SELECT `+currencyColumns+` FROM currencies ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list currencies: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Currency, error) {
		return scanCurrency(row)
	})
}

// UpdateRates sets exchange rates by currency code and returns how many
// currencies were updated. Unknown codes are ignored.
func (p *PostgresCurrencies) UpdateRates(ctx context.Context, rates map[string]decimal.Decimal) (int64, error) {
	var updated int64
	for code, rate := range rates {
		if !rate.IsPositive() {
			return updated, fmt.Errorf("%w: %s=%s", ErrInvalidRate, code, rate)
		}
		tag, err := p.db.Exec(ctx,
			`UPDATE currencies SET exchange_rate = $2::numeric, updated_at = now()
			 WHERE lower(code) = $1`, codeKey(code), rate.String())
		if err != nil {
			return updated, fmt.Errorf("catalog: update rate %s: %w", code, err)
		}
		updated += tag.RowsAffected()
	}
	return updated, nil
}

func scanCurrency(row pgx.Row) (Currency, error) {
	var (
		c    Currency
		pos  string
		rate string
	)
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &pos,
		&c.Format.ThousandSeparator, &c.Format.DecimalSeparator, &c.Format.DecimalPlaces,
		&rate, &c.Position, &c.IsActive, &c.IsDefault)
	if err != nil {
		return c, err
	}
	c.Format.SymbolPosition = SymbolPosition(pos)
	c.ExchangeRate, err = decimal.NewFromString(rate)
	if err != nil {
		return c, errors.Join(ErrInvalidRate, err)
	}
	return c, nil
}

func one[E Entity](e E, err error) (E, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		var zero E
		return zero, ErrNotFound
	}
	return e, err
}
