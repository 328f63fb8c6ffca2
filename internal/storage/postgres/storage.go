package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; it lets
// tests substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type milestoneRepository struct {
	storage *Storage
}

type eventRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Milestones() repository.MilestoneRepository {
	return &milestoneRepository{storage: s}
}

func (s *Storage) Events() repository.EventRepository {
	return &eventRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL,
            status TEXT NOT NULL,
            subtotal BIGINT NOT NULL,
            shipping_cost BIGINT NOT NULL DEFAULT 0,
            tax_amount BIGINT NOT NULL DEFAULT 0,
            discount_amount BIGINT NOT NULL DEFAULT 0,
            total_amount BIGINT NOT NULL,
            payment_status TEXT NOT NULL,
            tracking_number TEXT,
            estimated_delivery TIMESTAMPTZ,
            actual_delivery TIMESTAMPTZ,
            cancellation_reason TEXT,
            return_reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            version BIGINT NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            seller_id BIGINT NOT NULL,
            quantity BIGINT NOT NULL,
            unit_price BIGINT NOT NULL,
            total_price BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS projects (
            id BIGSERIAL PRIMARY KEY,
            client_id BIGINT NOT NULL,
            freelancer_id BIGINT NOT NULL,
            title TEXT NOT NULL,
            budget_total BIGINT NOT NULL,
            budget_paid BIGINT NOT NULL DEFAULT 0,
            budget_remaining BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            version BIGINT NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS milestones (
            id BIGSERIAL PRIMARY KEY,
            project_id BIGINT NOT NULL REFERENCES projects(id),
            title TEXT NOT NULL,
            status TEXT NOT NULL,
            amount BIGINT NOT NULL,
            released BOOLEAN NOT NULL DEFAULT FALSE,
            release_date TIMESTAMPTZ,
            deliverables JSONB NOT NULL DEFAULT '[]',
            client_approval BOOLEAN NOT NULL DEFAULT FALSE,
            client_comment TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            version BIGINT NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS events (
            id BIGSERIAL PRIMARY KEY,
            aggregate_type TEXT NOT NULL,
            aggregate_id BIGINT NOT NULL,
            type TEXT NOT NULL,
            actor_id BIGINT NOT NULL,
            actor_role TEXT NOT NULL,
            payload JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            dispatched_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS review_markers (
            product_id BIGINT NOT NULL,
            buyer_id BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (product_id, buyer_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_aggregate ON events(aggregate_type, aggregate_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_pending ON events(id) WHERE dispatched_at IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, buyer_id, status, subtotal, shipping_cost, tax_amount, discount_amount,
                      total_amount, payment_status, tracking_number, estimated_delivery, actual_delivery,
                      cancellation_reason, return_reason, created_at, updated_at, version`

const milestoneColumns = `id, project_id, title, status, amount, released, release_date, deliverables,
                          client_approval, client_comment, created_at, updated_at, version`

const eventColumns = `id, aggregate_type, aggregate_id, type, actor_id, actor_role, payload, created_at, dispatched_at`

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	stored := *order
	stored.Items = append([]model.OrderItem(nil), order.Items...)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (buyer_id, status, subtotal, shipping_cost, tax_amount,
                             discount_amount, total_amount, payment_status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                             RETURNING id, created_at, updated_at, version`
		err := tx.QueryRow(ctx, insertOrder,
			stored.BuyerID, stored.Status, stored.Subtotal, stored.ShippingCost, stored.TaxAmount,
			stored.DiscountAmount, stored.TotalAmount, stored.PaymentStatus,
		).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt, &stored.Version)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, seller_id, quantity, unit_price, total_price)
                            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		for i := range stored.Items {
			item := &stored.Items[i]
			item.OrderID = stored.ID
			if err := tx.QueryRow(ctx, insertItem,
				stored.ID, item.ProductID, item.SellerID, item.Quantity, item.UnitPrice, item.TotalPrice,
			).Scan(&item.ID); err != nil {
				return err
			}
		}

		return insertEventTx(ctx, tx, model.Event{
			AggregateType: model.AggregateOrder,
			AggregateID:   stored.ID,
			Type:          model.EventOrderCreated,
			ActorID:       stored.BuyerID,
			ActorRole:     model.RoleBuyer,
			Payload:       json.RawMessage(`{}`),
		})
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if order.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, seller_id, quantity, unit_price, total_price
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SellerID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) ApplyTransition(ctx context.Context, change repository.OrderTransition) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		current, err := scanOrder(tx.QueryRow(ctx, lockQuery, change.OrderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if current.Version != change.ExpectedVersion || current.Status != change.From {
			return domainErrors.ErrConcurrencyConflict
		}

		// Settlement runs before the write so a gateway failure aborts
		// the whole transition.
		if change.Settle != nil {
			if err := change.Settle(ctx); err != nil {
				return err
			}
		}

		const update = `UPDATE orders SET
                        status=$2,
                        payment_status=COALESCE($3, payment_status),
                        tracking_number=COALESCE($4, tracking_number),
                        estimated_delivery=COALESCE($5, estimated_delivery),
                        actual_delivery=CASE WHEN $6 THEN NOW() ELSE actual_delivery END,
                        cancellation_reason=COALESCE($7, cancellation_reason),
                        return_reason=COALESCE($8, return_reason),
                        updated_at=NOW(),
                        version=version+1
                        WHERE id=$1
                        RETURNING ` + orderColumns
		updated, err = scanOrder(tx.QueryRow(ctx, update,
			change.OrderID, change.To, change.PaymentStatus, change.TrackingNumber,
			change.EstimatedDelivery, change.StampActualDelivery,
			change.CancellationReason, change.ReturnReason))
		if err != nil {
			return err
		}

		return insertEventTx(ctx, tx, change.Event)
	})
	if err != nil {
		return nil, err
	}
	if updated.Items, err = r.loadItems(ctx, updated.ID); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *orderRepository) AddReviewMarker(ctx context.Context, productID, buyerID int64, event model.Event, store func(ctx context.Context) error) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO review_markers (product_id, buyer_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insert, productID, buyerID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrDuplicateReview
			}
			return err
		}
		// Content delivery runs before commit so a store failure rolls
		// the marker back and the buyer can retry.
		if store != nil {
			if err := store(ctx); err != nil {
				return err
			}
		}
		return insertEventTx(ctx, tx, event)
	})
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.BuyerID, &o.Status, &o.Subtotal, &o.ShippingCost, &o.TaxAmount,
		&o.DiscountAmount, &o.TotalAmount, &o.PaymentStatus, &o.TrackingNumber, &o.EstimatedDelivery,
		&o.ActualDelivery, &o.CancellationReason, &o.ReturnReason, &o.CreatedAt, &o.UpdatedAt, &o.Version)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// --- MilestoneRepository implementation ---

func (r *milestoneRepository) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	const query = `INSERT INTO projects (client_id, freelancer_id, title, budget_total, budget_paid, budget_remaining)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at, version`
	stored := *project
	err := r.storage.pool.QueryRow(ctx, query,
		stored.ClientID, stored.FreelancerID, stored.Title,
		stored.BudgetTotal, stored.BudgetPaid, stored.BudgetRemaining,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt, &stored.Version)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *milestoneRepository) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	const query = `SELECT id, client_id, freelancer_id, title, budget_total, budget_paid, budget_remaining,
                   created_at, updated_at, version FROM projects WHERE id=$1`
	var p model.Project
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.ClientID, &p.FreelancerID, &p.Title,
		&p.BudgetTotal, &p.BudgetPaid, &p.BudgetRemaining, &p.CreatedAt, &p.UpdatedAt, &p.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error) {
	deliverables, err := json.Marshal(milestone.Deliverables)
	if err != nil {
		return nil, err
	}
	const query = `INSERT INTO milestones (project_id, title, status, amount, deliverables)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at, version`
	stored := *milestone
	stored.Deliverables = append([]model.Deliverable(nil), milestone.Deliverables...)
	err = r.storage.pool.QueryRow(ctx, query,
		stored.ProjectID, stored.Title, stored.Status, stored.Amount, deliverables,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt, &stored.Version)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *milestoneRepository) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id=$1`
	milestone, err := scanMilestone(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return milestone, nil
}

func (r *milestoneRepository) ApplyTransition(ctx context.Context, change repository.MilestoneTransition) (*model.Milestone, error) {
	var updated *model.Milestone
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id=$1 FOR UPDATE`
		current, err := scanMilestone(tx.QueryRow(ctx, lockQuery, change.MilestoneID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if current.Version != change.ExpectedVersion || current.Status != change.From {
			return domainErrors.ErrConcurrencyConflict
		}

		var deliverables []byte
		if change.Deliverables != nil {
			if deliverables, err = json.Marshal(change.Deliverables); err != nil {
				return err
			}
		}

		const update = `UPDATE milestones SET
                        status=$2,
                        deliverables=COALESCE($3, deliverables),
                        client_comment=COALESCE($4, client_comment),
                        updated_at=NOW(),
                        version=version+1
                        WHERE id=$1
                        RETURNING ` + milestoneColumns
		updated, err = scanMilestone(tx.QueryRow(ctx, update,
			change.MilestoneID, change.To, deliverables, change.ClientComment))
		if err != nil {
			return err
		}

		return insertEventTx(ctx, tx, change.Event)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *milestoneRepository) Release(ctx context.Context, change repository.MilestoneRelease) (*model.Milestone, error) {
	var updated *model.Milestone
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id=$1 FOR UPDATE`
		milestone, err := scanMilestone(tx.QueryRow(ctx, lockQuery, change.MilestoneID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if milestone.Version != change.ExpectedVersion {
			return domainErrors.ErrConcurrencyConflict
		}
		if milestone.Released {
			return domainErrors.ErrAlreadyApproved
		}

		const lockProject = `SELECT budget_remaining FROM projects WHERE id=$1 FOR UPDATE`
		var remaining int64
		if err := tx.QueryRow(ctx, lockProject, milestone.ProjectID).Scan(&remaining); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if remaining < milestone.Amount {
			return domainErrors.ErrInsufficientFunds
		}

		if change.Capture != nil {
			if err := change.Capture(ctx, milestone.Amount); err != nil {
				return err
			}
		}

		const updateMilestone = `UPDATE milestones SET
                                 status=$2,
                                 released=TRUE,
                                 release_date=NOW(),
                                 client_approval=TRUE,
                                 updated_at=NOW(),
                                 version=version+1
                                 WHERE id=$1
                                 RETURNING ` + milestoneColumns
		updated, err = scanMilestone(tx.QueryRow(ctx, updateMilestone,
			change.MilestoneID, model.MilestoneStatusApproved))
		if err != nil {
			return err
		}

		const updateProject = `UPDATE projects SET
                               budget_paid=budget_paid+$2,
                               budget_remaining=budget_remaining-$2,
                               updated_at=NOW(),
                               version=version+1
                               WHERE id=$1`
		if _, err := tx.Exec(ctx, updateProject, milestone.ProjectID, milestone.Amount); err != nil {
			return err
		}

		return insertEventTx(ctx, tx, change.Event)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanMilestone(row pgx.Row) (*model.Milestone, error) {
	var m model.Milestone
	var deliverables []byte
	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Status, &m.Amount, &m.Released, &m.ReleaseDate,
		&deliverables, &m.ClientApproval, &m.ClientComment, &m.CreatedAt, &m.UpdatedAt, &m.Version)
	if err != nil {
		return nil, err
	}
	if len(deliverables) > 0 {
		if err := json.Unmarshal(deliverables, &m.Deliverables); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// --- EventRepository implementation ---

func insertEventTx(ctx context.Context, tx pgx.Tx, event model.Event) error {
	const query = `INSERT INTO events (aggregate_type, aggregate_id, type, actor_id, actor_role, payload)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	payload := event.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	_, err := tx.Exec(ctx, query,
		event.AggregateType, event.AggregateID, event.Type, event.ActorID, event.ActorRole, payload)
	return err
}

func (r *eventRepository) Append(ctx context.Context, event model.Event) (*model.Event, error) {
	const query = `INSERT INTO events (aggregate_type, aggregate_id, type, actor_id, actor_role, payload)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at`
	stored := event
	if len(stored.Payload) == 0 {
		stored.Payload = json.RawMessage(`{}`)
	}
	err := r.storage.pool.QueryRow(ctx, query,
		stored.AggregateType, stored.AggregateID, stored.Type, stored.ActorID, stored.ActorRole, stored.Payload,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *eventRepository) ListByAggregate(ctx context.Context, aggregate model.AggregateType, aggregateID int64) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE aggregate_type=$1 AND aggregate_id=$2 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, aggregate, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) SelectPendingBatch(ctx context.Context, limit int) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE dispatched_at IS NULL ORDER BY id LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) MarkDispatched(ctx context.Context, eventID int64) error {
	const query = `UPDATE events SET dispatched_at=NOW() WHERE id=$1 AND dispatched_at IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, eventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.Type, &e.ActorID, &e.ActorRole,
			&e.Payload, &e.CreatedAt, &e.DispatchedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
