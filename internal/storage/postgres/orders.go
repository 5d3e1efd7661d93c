package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
	recentOrders     = 5
)

const orderColumns = `id::text, reference, items, customer_name, customer_email, customer_phone,
       shipping_address, shipping_city, shipping_state, shipping_zip_code, shipping_country, shipping_method,
       payment_method, payment_custom_method, payment_status, deposit_amount::text, total_amount::text,
       status, status_history, notes, custom_notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o              model.Order
		items, history []byte
		paymentStatus  string
		status         string
		deposit        *string
		total          string
	)
	err := row.Scan(
		&o.ID, &o.Reference, &items, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.State, &o.Shipping.ZipCode, &o.Shipping.Country, &o.Shipping.PreferredMethod,
		&o.Payment.PreferredMethod, &o.Payment.CustomMethod, &paymentStatus, &deposit, &total,
		&status, &history, &o.Notes, &o.CustomNotes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
		return nil, fmt.Errorf("decode status history: %w", err)
	}
	if o.Payment.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("decode total amount: %w", err)
	}
	if deposit != nil {
		amount, err := decimal.NewFromString(*deposit)
		if err != nil {
			return nil, fmt.Errorf("decode deposit amount: %w", err)
		}
		o.Payment.DepositAmount = &amount
	}
	o.Payment.Status = model.PaymentStatus(paymentStatus)
	o.Status = model.OrderStatus(status)
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (
            reference, items, customer_name, customer_email, customer_phone,
            shipping_address, shipping_city, shipping_state, shipping_zip_code, shipping_country, shipping_method,
            payment_method, payment_custom_method, payment_status, deposit_amount, total_amount,
            status, status_history, notes, custom_notes)
        VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15::numeric, $16::numeric,
            $17, $18::jsonb, $19, $20)
        RETURNING id::text, created_at, updated_at`

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	history, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return nil, fmt.Errorf("encode status history: %w", err)
	}

	created := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.Reference, string(items), order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.Shipping.Address, order.Shipping.City, order.Shipping.State, order.Shipping.ZipCode, order.Shipping.Country, order.Shipping.PreferredMethod,
		order.Payment.PreferredMethod, order.Payment.CustomMethod, string(order.Payment.Status), decimalParam(order.Payment.DepositAmount), order.Payment.TotalAmount.String(),
		string(order.Status), string(history), order.Notes, order.CustomNotes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return nil, domainErrors.ErrConflict
		}
		return nil, r.storage.storeError("create order", err)
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return r.getOne(ctx, "get order", query, id)
}

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE reference=$1`
	return r.getOne(ctx, "get order by reference", query, reference)
}

func (r *orderRepository) FindForTracking(ctx context.Context, reference, email string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE reference=$1 AND lower(customer_email)=lower($2)`
	return r.getOne(ctx, "track order", query, reference, email)
}

func (r *orderRepository) getOne(ctx context.Context, op, query string, args ...any) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == codeInvalidTextEncoding {
			return nil, domainErrors.ErrNotFound
		}
		return nil, r.storage.storeError(op, err)
	}
	return order, nil
}

func (r *orderRepository) AppendStatus(ctx context.Context, id string, entry model.StatusEntry, allowedFrom []model.OrderStatus, details model.OrderUpdate) (*model.Order, error) {
	query := `UPDATE orders
        SET status=$2, status_history = status_history || $3::jsonb,
            notes = COALESCE($5, notes),
            custom_notes = COALESCE($6, custom_notes),
            payment_status = COALESCE($7, payment_status),
            deposit_amount = COALESCE($8::numeric, deposit_amount),
            updated_at=NOW()
        WHERE id=$1 AND status = ANY($4)
        RETURNING ` + orderColumns

	appended, err := json.Marshal([]model.StatusEntry{entry})
	if err != nil {
		return nil, fmt.Errorf("encode status entry: %w", err)
	}
	sources := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		sources = append(sources, string(s))
	}

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, string(entry.Status), string(appended), sources,
		details.Notes, details.CustomNotes, paymentStatusParam(details.PaymentStatus), decimalParam(details.DepositAmount)))
	if err == nil {
		return order, nil
	}
	if pgErrorCode(err) == codeInvalidTextEncoding {
		return nil, domainErrors.ErrNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, r.storage.storeError("append status", err)
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, r.storage.storeError("append status", err)
	}
	if !exists {
		return nil, domainErrors.ErrNotFound
	}
	return nil, domainErrors.ErrInvalidTransition
}

func (r *orderRepository) UpdateDetails(ctx context.Context, id string, update model.OrderUpdate) (*model.Order, error) {
	query := `UPDATE orders
        SET notes = COALESCE($2, notes),
            custom_notes = COALESCE($3, custom_notes),
            payment_status = COALESCE($4, payment_status),
            deposit_amount = COALESCE($5::numeric, deposit_amount),
            updated_at = NOW()
        WHERE id=$1
        RETURNING ` + orderColumns

	return r.getOne(ctx, "update order", query, id, update.Notes, update.CustomNotes, paymentStatusParam(update.PaymentStatus), decimalParam(update.DepositAmount))
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+arg(string(*filter.Status)))
	}
	if filter.Email != "" {
		conditions = append(conditions, "lower(customer_email) = lower("+arg(filter.Email)+")")
	}
	if filter.Search != "" {
		p := arg("%" + escapeLike(filter.Search) + "%")
		conditions = append(conditions, fmt.Sprintf("(reference ILIKE %[1]s OR customer_email ILIKE %[1]s OR customer_name ILIKE %[1]s)", p))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT ` + arg(clampLimit(filter.Limit)) + ` OFFSET ` + arg(max(filter.Offset, 0))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.storage.storeError("list orders", err)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, r.storage.storeError("list orders", err)
	}
	return orders, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	const countsQuery = `SELECT status, COUNT(*),
            COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0)::text
        FROM orders GROUP BY status`
	recentQuery := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`

	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64), Revenue: decimal.Zero}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, countsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				status  string
				count   int64
				revenue string
			)
			if err := rows.Scan(&status, &count, &revenue); err != nil {
				return err
			}
			amount, err := decimal.NewFromString(revenue)
			if err != nil {
				return fmt.Errorf("decode revenue: %w", err)
			}
			stats.ByStatus[model.OrderStatus(status)] = count
			stats.Total += count
			stats.Revenue = stats.Revenue.Add(amount)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		recent, err := tx.Query(ctx, recentQuery, recentOrders)
		if err != nil {
			return err
		}
		stats.Recent, err = collectOrders(recent)
		return err
	})
	if err != nil {
		return nil, r.storage.storeError("order stats", err)
	}
	return stats, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func decimalParam(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func paymentStatusParam(s *model.PaymentStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
