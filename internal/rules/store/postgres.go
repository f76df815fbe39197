package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"saku/internal/rules"
	dErrors "saku/pkg/domain-errors"
	"saku/pkg/platform/tx"
)

const (
	selectRulesQuery = `SELECT key, value, citation FROM rules ORDER BY key`
	upsertRuleQuery  = `
		INSERT INTO rules (key, value, citation)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			citation = EXCLUDED.citation
	`
)

// Postgres stores one row per top-level rule: rules(key, value JSONB, citation).
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed rule store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string {
	return "postgres:rules"
}

// Read assembles the rule set from all rows. A row citation is copied into
// an object value that has none of its own.
func (p *Postgres) Read(ctx context.Context) (rules.RuleSet, error) {
	rows, err := p.db.QueryContext(ctx, selectRulesQuery)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "query rules")
	}
	defer rows.Close()

	rs := rules.RuleSet{}
	for rows.Next() {
		var (
			key      string
			raw      []byte
			citation sql.NullString
		)
		if err := rows.Scan(&key, &raw, &citation); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan rule row")
		}

		value, err := decodeValue(raw)
		if err != nil {
			return nil, rules.NewConfigParseError(fmt.Sprintf("%s/%s", p.Name(), key), err)
		}
		if m, ok := value.(map[string]any); ok && citation.Valid && citation.String != "" {
			if _, has := m["citation"]; !has {
				m["citation"] = citation.String
			}
		}
		rs[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate rule rows")
	}

	if err := rules.CheckShape(rs, p.Name()); err != nil {
		return nil, err
	}
	return rs, nil
}

// decodeValue keeps numbers as json.Number so they render as stored.
func decodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// Save upserts the three top-level rules in one transaction.
func (p *Postgres) Save(ctx context.Context, doc rules.Document) error {
	entries := []struct {
		key      string
		value    any
		citation string
	}{
		{rules.KeyMinPerDepartment, doc.MinPerDepartment, doc.MinPerDepartment.Citation},
		{rules.KeyGenderBalance, doc.GenderBalance, doc.GenderBalance.Citation},
		{rules.KeyEligibility, doc.Eligibility, ""},
	}

	return tx.Run(ctx, p.db, func(ctx context.Context) error {
		exec := tx.Executor(ctx, p.db)
		for _, e := range entries {
			value, err := json.Marshal(e.value)
			if err != nil {
				return fmt.Errorf("encode rule %s: %w", e.key, err)
			}
			if _, err := exec.ExecContext(ctx, upsertRuleQuery, e.key, value, e.citation); err != nil {
				return fmt.Errorf("upsert rule %s: %w", e.key, err)
			}
		}
		return nil
	})
}
