package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLitePlannerRepo implements PlannerRepo using a SQLite database.
type SQLitePlannerRepo struct {
	db db.DBTX
}

func NewSQLitePlannerRepo(db db.DBTX) *SQLitePlannerRepo {
	return &SQLitePlannerRepo{db: db}
}

const plannerColumns = `id, title, notes, data, created_at, updated_at`

func (r *SQLitePlannerRepo) Create(ctx context.Context, p *domain.Planner) error {
	data, err := encodePlanner(p)
	if err != nil {
		return err
	}
	query := `INSERT INTO planners (id, title, notes, data, tray, created_at, updated_at)
		VALUES (?, ?, ?, ?, '[]', ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Notes,
		data,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting planner: %w", err)
	}
	return nil
}

func (r *SQLitePlannerRepo) GetByID(ctx context.Context, id string) (*domain.Planner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+plannerColumns+` FROM planners WHERE id = ?`, id)
	p, err := scanPlanner(row)
	if err != nil {
		return nil, notFound(err, "planner", id)
	}
	return p, nil
}

func (r *SQLitePlannerRepo) List(ctx context.Context) ([]*domain.Planner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+plannerColumns+` FROM planners ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing planners: %w", err)
	}
	defer rows.Close()

	var planners []*domain.Planner
	for rows.Next() {
		p, err := scanPlanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning planner row: %w", err)
		}
		planners = append(planners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planners: %w", err)
	}
	return planners, nil
}

// Save writes the planner's title, notes, slots, catalog and labels.
func (r *SQLitePlannerRepo) Save(ctx context.Context, p *domain.Planner) error {
	data, err := encodePlanner(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE planners SET title = ?, notes = ?, data = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Notes, data, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating planner: %w", err)
	}
	return requireAffected(res, "planner", p.ID)
}

func (r *SQLitePlannerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM planners WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting planner: %w", err)
	}
	return requireAffected(res, "planner", id)
}

func (r *SQLitePlannerRepo) GetTray(ctx context.Context, plannerID string) ([]domain.Course, error) {
	var data sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT tray FROM planners WHERE id = ?`, plannerID).Scan(&data)
	if err != nil {
		return nil, notFound(err, "planner", plannerID)
	}
	return decodeTray(data.String)
}

func (r *SQLitePlannerRepo) SaveTray(ctx context.Context, plannerID string, tray []domain.Course) error {
	data, err := encodeTray(tray)
	if err != nil {
		return fmt.Errorf("encoding tray: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE planners SET tray = ? WHERE id = ?`, data, plannerID)
	if err != nil {
		return fmt.Errorf("updating tray: %w", err)
	}
	return requireAffected(res, "planner", plannerID)
}

func scanPlanner(row rowScanner) (*domain.Planner, error) {
	var p domain.Planner
	var data, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Title, &p.Notes, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if err := decodePlanner(&p, data); err != nil {
		return nil, err
	}
	return &p, nil
}
