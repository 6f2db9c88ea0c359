package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/importer"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

// suggestionPattern finds course references inside free-text titles such as
// "CSE 115A or CSE 185E". Matches are parsed as catalog keys before lookup.
var suggestionPattern = regexp.MustCompile(`[A-Z]{2,6} [0-9]{1,3}[A-Z]*`)

type catalogService struct {
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(courses repository.CourseRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{courses: courses, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *catalogService) Search(ctx context.Context, query string, limit int) ([]*domain.CatalogRecord, error) {
	return s.courses.Search(ctx, query, limit)
}

func (s *catalogService) Lookup(ctx context.Context, key domain.CatalogKey) (*domain.CatalogRecord, error) {
	return s.courses.GetByKey(ctx, key)
}

// Suggest returns the catalog courses referenced in a custom course title,
// in the order they appear. References the catalog does not know are skipped.
func (s *catalogService) Suggest(ctx context.Context, title string) ([]*domain.CatalogRecord, error) {
	var out []*domain.CatalogRecord
	seen := map[domain.CatalogKey]bool{}
	for _, ref := range suggestionPattern.FindAllString(title, -1) {
		key, ok := domain.ParseCatalogKey(ref)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		rec, err := s.courses.GetByKey(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("looking up %s: %w", key, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ImportCSV upserts every usable row of a catalog export in one transaction.
// Unusable rows are reported in Skipped and do not abort the import.
func (s *catalogService) ImportCSV(ctx context.Context, filePath string) (res *CatalogImportResult, err error) {
	fields := map[string]any{"path": filePath}
	done := startUseCase(ctx, s.observer, "import-catalog", fields)
	defer func() { done(err) }()

	records, rowErrs, err := importer.LoadCatalogCSV(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		courses := repository.NewSQLiteCourseRepo(tx)
		for _, rec := range records {
			if err := courses.Upsert(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["imported"] = len(records)
	fields["skipped"] = len(rowErrs)
	return &CatalogImportResult{Imported: len(records), Skipped: rowErrs}, nil
}
