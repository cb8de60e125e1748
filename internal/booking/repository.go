package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Insert(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	FindAll(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Update writes b.Status only if the stored status still equals expected,
	// and refreshes b.UpdatedAt. It returns ErrStaleStatus when another writer
	// got there first and ErrNotFound when the booking does not exist.
	Update(ctx context.Context, b *Booking, expected Status) error
}

// sortColumns whitelists the columns a list may be ordered by.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"total":      "total",
	"status":     "status",
}

var bookingColumns = []string{
	"id", "guest_name", "accommodation_id", "accommodation_name", "excess_guest_count",
	"payment_method", "payment_reference", "base_price", "excess_fee", "discount", "total",
	"status", "created_at", "updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(bookingColumns[:len(bookingColumns)-1]...).
		Values(
			b.ID, b.GuestName, b.AccommodationID, b.AccommodationName, b.ExcessGuestCount,
			b.PaymentMethod, b.PaymentReference, b.BasePrice, b.ExcessFee, b.Discount, b.Total,
			b.Status, b.CreatedAt,
		).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) FindByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) FindAll(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(columns...).
		From("public.bookings")

	if filter.GuestName != "" {
		query = query.Where(squirrel.Eq{"guest_name": filter.GuestName})
	}
	if filter.AccommodationID != "" {
		query = query.Where(squirrel.Eq{"accommodation_id": filter.AccommodationID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.PaymentMethod != "" {
		query = query.Where(squirrel.Eq{"payment_method": filter.PaymentMethod})
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy+" "+orderDir, "id "+orderDir)

	page, pageSize := pagination(filter)
	query = query.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.GuestName, &b.AccommodationID, &b.AccommodationName, &b.ExcessGuestCount,
			&b.PaymentMethod, &b.PaymentReference, &b.BasePrice, &b.ExcessFee, &b.Discount, &b.Total,
			&b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking, expected Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "status": expected}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update booking failed: %w", err)
	}

	// Nothing matched: either the booking is gone or its status moved on.
	if _, err := r.FindByID(ctx, b.ID); err != nil {
		return err
	}
	return ErrStaleStatus
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.GuestName, &b.AccommodationID, &b.AccommodationName, &b.ExcessGuestCount,
		&b.PaymentMethod, &b.PaymentReference, &b.BasePrice, &b.ExcessFee, &b.Discount, &b.Total,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

const (
	maxPage     = 1_000_000
	maxPageSize = 100
)

// pagination applies defaults and clamps the window so that
// (page-1)*pageSize cannot overflow.
func pagination(filter Filter) (page, pageSize int) {
	page, pageSize = filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
