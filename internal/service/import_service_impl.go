package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cyclesync/internal/db"
	"github.com/alexanderramin/cyclesync/internal/importer"
	"github.com/alexanderramin/cyclesync/internal/repository"
)

type importService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewImportService(activities repository.ActivityRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		activities: activities,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportCatalog(ctx context.Context, path string) (res *ImportResult, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "import-catalog", fields)(&err)

	c, err := importer.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	res, err = s.importCatalog(ctx, c)
	if res != nil {
		fields["activities"] = res.Activities
	}
	return res, err
}

// SeedDefaultCatalog loads the bundled catalog into an empty store. A store
// that already has activities is left alone.
func (s *importService) SeedDefaultCatalog(ctx context.Context) (*ImportResult, error) {
	existing, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &ImportResult{Skipped: true}, nil
	}
	c, err := importer.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading default catalog: %w", err)
	}
	return s.importCatalog(ctx, c)
}

func (s *importService) importCatalog(ctx context.Context, c *importer.Catalog) (*ImportResult, error) {
	if errs := importer.ValidateCatalog(c); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	acts, err := c.ToActivities()
	if err != nil {
		return nil, fmt.Errorf("converting catalog: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteActivityRepo(tx)
		for _, a := range acts {
			if err := repo.Upsert(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing catalog: %w", err)
	}
	return &ImportResult{Activities: len(acts)}, nil
}
