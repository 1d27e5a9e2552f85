package cur

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/de-tools/cost-advisor/pkg/models/store"
	"github.com/rs/zerolog"
)

const (
	ColumnProductName = "product_product_name"
	ColumnRegion      = "product_region"
)

// amortizedCostExpr spreads savings plan and reservation fees over the usage
// they cover, the way the billing console reports amortized cost.
const amortizedCostExpr = `SUM(CASE line_item_line_item_type
			WHEN 'SavingsPlanCoveredUsage' THEN savings_plan_savings_plan_effective_cost
			WHEN 'SavingsPlanRecurringFee' THEN savings_plan_total_commitment_to_date - savings_plan_used_commitment
			WHEN 'SavingsPlanNegation' THEN 0
			WHEN 'SavingsPlanUpfrontFee' THEN 0
			WHEN 'DiscountedUsage' THEN reservation_effective_cost
			WHEN 'RIFee' THEN reservation_unused_amortized_upfront_fee_for_billing_period + reservation_unused_recurring_fee
			ELSE CASE
				WHEN line_item_line_item_type = 'Fee' AND reservation_reservation_a_r_n <> '' THEN 0
				ELSE line_item_unblended_cost
			END
		END)`

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

type Store interface {
	GetAmortizedCost(
		ctx context.Context,
		startTime time.Time,
		endTime time.Time,
		groupColumn string,
	) ([]store.CostRow, error)
}

type curStore struct {
	db    *sql.DB
	table string
}

// NewStore returns a store over a CUR table such as "billing.cur.line_items".
func NewStore(db *sql.DB, table string) (Store, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid report table name: %q", table)
	}
	return &curStore{db: db, table: table}, nil
}

// AmortizedCostQuery builds the query for one grouping column; an empty column
// yields a single total row.
func AmortizedCostQuery(table, groupColumn string) string {
	if groupColumn == "" {
		return fmt.Sprintf(`
		SELECT
			'' AS group_key,
			%[2]s AS amortized_cost
		FROM %[1]s
		WHERE line_item_usage_start_date >= ?
			AND line_item_usage_start_date < ?
	`, table, amortizedCostExpr)
	}

	return fmt.Sprintf(`
		SELECT
			%[3]s AS group_key,
			%[2]s AS amortized_cost
		FROM %[1]s
		WHERE line_item_usage_start_date >= ?
			AND line_item_usage_start_date < ?
		GROUP BY %[3]s
		ORDER BY amortized_cost DESC
	`, table, amortizedCostExpr, groupColumn)
}

func (s *curStore) GetAmortizedCost(
	ctx context.Context,
	startTime time.Time,
	endTime time.Time,
	groupColumn string,
) ([]store.CostRow, error) {
	logger := zerolog.Ctx(ctx)

	if groupColumn != "" && groupColumn != ColumnProductName && groupColumn != ColumnRegion {
		return nil, fmt.Errorf("unsupported group column: %s", groupColumn)
	}

	rows, err := s.db.QueryContext(ctx, AmortizedCostQuery(s.table, groupColumn), startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("amortized cost query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close cost query rows")
		}
	}(rows)

	var records []store.CostRow
	for rows.Next() {
		var (
			key    sql.NullString
			amount sql.NullFloat64
		)
		if err := rows.Scan(&key, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan cost row: %w", err)
		}
		if !amount.Valid {
			continue
		}
		records = append(records, store.CostRow{
			GroupKey: key.String,
			Amount:   amount.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cost rows iteration failed: %w", err)
	}

	logger.Debug().
		Str("group_column", groupColumn).
		Int("rows", len(records)).
		Msg("retrieved amortized cost")

	return records, nil
}
