package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo over the catalog_courses table.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(db db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: db}
}

const courseColumns = `department_code, number, department, title, credits, description, prerequisites, ge, quarters_offered`

// DefaultSearchLimit bounds Search when the caller passes no limit.
const DefaultSearchLimit = 25

func (r *SQLiteCourseRepo) Upsert(ctx context.Context, c *domain.CatalogRecord) error {
	ge, err := jsonColumn(c.GE)
	if err != nil {
		return fmt.Errorf("encoding ge: %w", err)
	}
	quarters, err := jsonColumn(c.QuartersOffered)
	if err != nil {
		return fmt.Errorf("encoding quarters_offered: %w", err)
	}
	query := `INSERT INTO catalog_courses (` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(department_code, number) DO UPDATE SET
			department = excluded.department,
			title = excluded.title,
			credits = excluded.credits,
			description = excluded.description,
			prerequisites = excluded.prerequisites,
			ge = excluded.ge,
			quarters_offered = excluded.quarters_offered`
	_, err = r.db.ExecContext(ctx, query,
		c.DepartmentCode,
		c.Number,
		c.Department,
		c.Title,
		c.Credits,
		c.Description,
		c.Prerequisites,
		ge,
		quarters,
	)
	if err != nil {
		return fmt.Errorf("upserting course %s: %w", c.Key(), err)
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByKey(ctx context.Context, key domain.CatalogKey) (*domain.CatalogRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM catalog_courses WHERE department_code = ? AND number = ?`,
		key.DepartmentCode, key.Number)
	c, err := scanCourse(row)
	if err != nil {
		return nil, notFound(err, "course", key.String())
	}
	return c, nil
}

// LookupCourse returns the plain course record for key. It lets the
// repository serve as the move engine's catalog.
func (r *SQLiteCourseRepo) LookupCourse(ctx context.Context, key domain.CatalogKey) (*domain.Course, error) {
	rec, err := r.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return &rec.Course, nil
}

// Search matches "DEPT NUM" prefixes, department codes and title words.
// Exact key matches sort first.
func (r *SQLiteCourseRepo) Search(ctx context.Context, query string, limit int) ([]*domain.CatalogRecord, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.TrimSpace(query)
	like := "%" + escapeLike(q) + "%"
	prefix := escapeLike(strings.ToUpper(q)) + "%"

	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM catalog_courses
		WHERE (department_code || ' ' || number) LIKE ? ESCAPE '\'
		   OR title LIKE ? ESCAPE '\'
		   OR department LIKE ? ESCAPE '\'
		ORDER BY
			CASE WHEN (department_code || ' ' || number) = ? THEN 0 ELSE 1 END,
			department_code,
			length(number),
			number
		LIMIT ?`,
		prefix, like, like, strings.ToUpper(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching courses: %w", err)
	}
	defer rows.Close()

	var out []*domain.CatalogRecord
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return out, nil
}

func (r *SQLiteCourseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanCourse(row rowScanner) (*domain.CatalogRecord, error) {
	var c domain.CatalogRecord
	var ge, quarters string
	err := row.Scan(
		&c.DepartmentCode, &c.Number, &c.Department,
		&c.Title, &c.Credits, &c.Description, &c.Prerequisites,
		&ge, &quarters,
	)
	if err != nil {
		return nil, err
	}
	if c.GE, err = parseJSONColumn[string](ge, "ge"); err != nil {
		return nil, err
	}
	if c.QuartersOffered, err = parseJSONColumn[domain.Term](quarters, "quarters_offered"); err != nil {
		return nil, err
	}
	return &c, nil
}
