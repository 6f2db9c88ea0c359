package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	return r.events[len(r.events)-1]
}

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	planners *repository.SQLitePlannerRepo
	courses  *repository.SQLiteCourseRepo
	programs *repository.SQLiteProgramRepo
	observer *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		planners: repository.NewSQLitePlannerRepo(database),
		courses:  repository.NewSQLiteCourseRepo(database),
		programs: repository.NewSQLiteProgramRepo(database),
		observer: &recordingObserver{},
	}
}

func (e *testEnv) seedPlanner(t *testing.T, p *domain.Planner) *domain.Planner {
	t.Helper()
	require.NoError(t, e.planners.Create(context.Background(), p))
	return p
}

func (e *testEnv) seedProgram(t *testing.T, p *domain.Program) *domain.Program {
	t.Helper()
	require.NoError(t, e.programs.Create(context.Background(), p))
	return p
}

func (e *testEnv) seedCourses(t *testing.T, recs ...*domain.CatalogRecord) {
	t.Helper()
	for _, r := range recs {
		require.NoError(t, e.courses.Upsert(context.Background(), r))
	}
}

func (e *testEnv) reload(t *testing.T, plannerID string) *domain.Planner {
	t.Helper()
	p, err := e.planners.GetByID(context.Background(), plannerID)
	require.NoError(t, err)
	return p
}

func slotTitles(t *testing.T, p *domain.Planner, slotID string) []string {
	t.Helper()
	courses, err := p.CoursesInSlot(slotID)
	require.NoError(t, err)
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.DisplayName())
	}
	return out
}

func logBuffer() (*bytes.Buffer, UseCaseObserver) {
	var buf bytes.Buffer
	return &buf, NewLogUseCaseObserver(&buf)
}
