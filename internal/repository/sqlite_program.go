package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// SQLiteProgramRepo stores degree programs with their requirement trees as
// JSON, plus the set of programs the student has declared.
type SQLiteProgramRepo struct {
	db db.DBTX
}

func NewSQLiteProgramRepo(db db.DBTX) *SQLiteProgramRepo {
	return &SQLiteProgramRepo{db: db}
}

const programColumns = `p.id, p.name, p.catalog_year, p.program_type, p.requirements, p.created_at, p.updated_at`

func (r *SQLiteProgramRepo) Create(ctx context.Context, p *domain.Program) error {
	tree, err := EncodeRequirementTree(p.Requirements)
	if err != nil {
		return err
	}
	query := `INSERT INTO programs (id, name, catalog_year, program_type, requirements, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.CatalogYear,
		string(p.Type),
		string(tree),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	return nil
}

func (r *SQLiteProgramRepo) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs p WHERE p.id = ?`, id)
	p, err := scanProgram(row)
	if err != nil {
		return nil, notFound(err, "program", id)
	}
	return p, nil
}

func (r *SQLiteProgramRepo) List(ctx context.Context) ([]*domain.Program, error) {
	return r.list(ctx, `SELECT `+programColumns+` FROM programs p ORDER BY p.program_type, p.name, p.catalog_year`)
}

// ListDeclared returns declared programs in declaration order.
func (r *SQLiteProgramRepo) ListDeclared(ctx context.Context) ([]*domain.Program, error) {
	return r.list(ctx, `SELECT `+programColumns+` FROM programs p
		JOIN declared_programs d ON d.program_id = p.id
		ORDER BY d.declared_at, p.name`)
}

func (r *SQLiteProgramRepo) list(ctx context.Context, query string) ([]*domain.Program, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning program row: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}
	return programs, nil
}

func (r *SQLiteProgramRepo) SaveRequirements(ctx context.Context, programID string, root *domain.RequirementList) error {
	tree, err := EncodeRequirementTree(root)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE programs SET requirements = ?, updated_at = ? WHERE id = ?`,
		string(tree), formatTime(nowUTC()), programID)
	if err != nil {
		return fmt.Errorf("updating requirements: %w", err)
	}
	return requireAffected(res, "program", programID)
}

func (r *SQLiteProgramRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	return requireAffected(res, "program", id)
}

// Declare marks the program as one the student is pursuing. Declaring twice
// keeps the original declaration time.
func (r *SQLiteProgramRepo) Declare(ctx context.Context, programID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO declared_programs (program_id, declared_at) VALUES (?, ?)
		 ON CONFLICT(program_id) DO NOTHING`,
		programID, formatTime(nowUTC()))
	if err != nil {
		return fmt.Errorf("declaring program: %w", err)
	}
	return nil
}

func (r *SQLiteProgramRepo) Undeclare(ctx context.Context, programID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM declared_programs WHERE program_id = ?`, programID)
	if err != nil {
		return fmt.Errorf("undeclaring program: %w", err)
	}
	return requireAffected(res, "declared program", programID)
}

func scanProgram(row rowScanner) (*domain.Program, error) {
	var p domain.Program
	var typ, tree, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &p.CatalogYear, &typ, &tree, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Type = domain.ProgramType(typ)

	var err error
	if p.Requirements, err = DecodeRequirementTree([]byte(tree)); err != nil {
		return nil, fmt.Errorf("program %s: %w", p.ID, err)
	}
	if p.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
