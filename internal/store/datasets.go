package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/im45145v/bipulse/internal/dataset"
	"github.com/im45145v/bipulse/internal/model"
	"github.com/jmoiron/sqlx"
)

// Run describes one ingested generation run.
type Run struct {
	ID           string    `db:"run_id"`
	Seed         int64     `db:"seed"`
	NumCustomers int       `db:"num_customers"`
	NumOrders    int       `db:"num_orders"`
	GeneratedAt  time.Time `db:"generated_at"`
}

// DatasetStore persists and reloads generated datasets.
// The MySQL DSN must include parseTime=true so DATE columns scan into time.Time.
type DatasetStore interface {
	SaveRun(ctx context.Context, run Run, ds *dataset.Dataset) error
	LatestRun(ctx context.Context) (*Run, error)
	LoadRun(ctx context.Context, runID string) (*dataset.Dataset, error)
}

type DatasetStoreImpl struct {
	db *sqlx.DB
}

func NewDatasetStore(db *sqlx.DB) *DatasetStoreImpl {
	return &DatasetStoreImpl{db: db}
}

var _ DatasetStore = (*DatasetStoreImpl)(nil)

// SaveRun inserts the run row plus all customer and order rows in one
// transaction; a failed ingest leaves no partial run behind.
func (s *DatasetStoreImpl) SaveRun(ctx context.Context, run Run, ds *dataset.Dataset) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const runQ = `
INSERT INTO dataset_runs (run_id, seed, num_customers, num_orders, generated_at)
VALUES (?, ?, ?, ?, ?)
`
	if _, err := tx.ExecContext(ctx, runQ,
		run.ID, run.Seed, len(ds.Customers), len(ds.Orders), run.GeneratedAt,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	const custQ = `
INSERT INTO customers
    (run_id, customer_id, name, email, segment, interests, last_contact_date,
     created_at, engagement_score, preferred_contact_time, pain_points,
     buying_behavior, response_rate, lifetime_value)
VALUES
    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	for _, c := range ds.Customers {
		if _, err := tx.ExecContext(ctx, custQ,
			run.ID, c.CustomerID, c.Name, c.Email, c.Segment.String(),
			dataset.FormatList(c.Interests), c.LastContactDate, c.CreatedAt,
			c.EngagementScore, c.PreferredContactTime,
			dataset.FormatList(c.PainPoints), c.BuyingBehavior.String(),
			c.ResponseRate, c.LifetimeValue,
		); err != nil {
			return fmt.Errorf("insert customer %s: %w", c.CustomerID, err)
		}
	}

	const orderQ = `
INSERT INTO orders
    (run_id, order_id, customer_id, order_date, amount, product_category, channel)
VALUES
    (?, ?, ?, ?, ?, ?, ?)
`
	for _, o := range ds.Orders {
		if _, err := tx.ExecContext(ctx, orderQ,
			run.ID, o.OrderID, o.CustomerID, o.OrderDate, o.Amount,
			o.ProductCategory, o.Channel.String(),
		); err != nil {
			return fmt.Errorf("insert order %s: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recently ingested run, or nil when none exist.
func (s *DatasetStoreImpl) LatestRun(ctx context.Context) (*Run, error) {
	var run Run
	err := s.db.GetContext(ctx, &run, `
		SELECT run_id, seed, num_customers, num_orders, generated_at
		  FROM dataset_runs
		 ORDER BY generated_at DESC, run_id DESC
		 LIMIT 1
	`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type customerRow struct {
	CustomerID           string    `db:"customer_id"`
	Name                 string    `db:"name"`
	Email                string    `db:"email"`
	Segment              string    `db:"segment"`
	Interests            string    `db:"interests"`
	LastContactDate      time.Time `db:"last_contact_date"`
	CreatedAt            time.Time `db:"created_at"`
	EngagementScore      int       `db:"engagement_score"`
	PreferredContactTime string    `db:"preferred_contact_time"`
	PainPoints           string    `db:"pain_points"`
	BuyingBehavior       string    `db:"buying_behavior"`
	ResponseRate         float64   `db:"response_rate"`
	LifetimeValue        float64   `db:"lifetime_value"`
}

type orderRow struct {
	OrderID         string    `db:"order_id"`
	CustomerID      string    `db:"customer_id"`
	OrderDate       time.Time `db:"order_date"`
	Amount          float64   `db:"amount"`
	ProductCategory string    `db:"product_category"`
	Channel         string    `db:"channel"`
}

// LoadRun reloads one run's dataset, in original row order.
func (s *DatasetStoreImpl) LoadRun(ctx context.Context, runID string) (*dataset.Dataset, error) {
	var custRows []customerRow
	if err := s.db.SelectContext(ctx, &custRows, `
		SELECT customer_id, name, email, segment, interests, last_contact_date,
		       created_at, engagement_score, preferred_contact_time, pain_points,
		       buying_behavior, response_rate, lifetime_value
		  FROM customers
		 WHERE run_id = ?
		 ORDER BY customer_id
	`, runID); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}

	var ordRows []orderRow
	if err := s.db.SelectContext(ctx, &ordRows, `
		SELECT order_id, customer_id, order_date, amount, product_category, channel
		  FROM orders
		 WHERE run_id = ?
		 ORDER BY order_id
	`, runID); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}

	ds := &dataset.Dataset{
		Customers: make([]model.Customer, 0, len(custRows)),
		Orders:    make([]model.Order, 0, len(ordRows)),
	}

	for _, r := range custRows {
		seg, ok := model.ParseSegment(r.Segment)
		if !ok {
			return nil, fmt.Errorf("customer %s: invalid segment %q", r.CustomerID, r.Segment)
		}
		behavior, ok := model.ParseBuyingBehavior(r.BuyingBehavior)
		if !ok {
			return nil, fmt.Errorf("customer %s: invalid buying_behavior %q", r.CustomerID, r.BuyingBehavior)
		}
		interests, err := dataset.ParseList(r.Interests)
		if err != nil {
			return nil, fmt.Errorf("customer %s: interests: %w", r.CustomerID, err)
		}
		painPoints, err := dataset.ParseList(r.PainPoints)
		if err != nil {
			return nil, fmt.Errorf("customer %s: pain_points: %w", r.CustomerID, err)
		}
		ds.Customers = append(ds.Customers, model.Customer{
			CustomerID:           r.CustomerID,
			Name:                 r.Name,
			Email:                r.Email,
			Segment:              seg,
			Interests:            interests,
			LastContactDate:      r.LastContactDate,
			CreatedAt:            r.CreatedAt,
			EngagementScore:      r.EngagementScore,
			PreferredContactTime: r.PreferredContactTime,
			PainPoints:           painPoints,
			BuyingBehavior:       behavior,
			ResponseRate:         r.ResponseRate,
			LifetimeValue:        r.LifetimeValue,
		})
	}

	for _, r := range ordRows {
		ch, ok := model.ParseChannel(r.Channel)
		if !ok {
			return nil, fmt.Errorf("order %s: invalid channel %q", r.OrderID, r.Channel)
		}
		ds.Orders = append(ds.Orders, model.Order{
			OrderID:         r.OrderID,
			CustomerID:      r.CustomerID,
			OrderDate:       r.OrderDate,
			Amount:          r.Amount,
			ProductCategory: r.ProductCategory,
			Channel:         ch,
		})
	}

	return ds, nil
}
