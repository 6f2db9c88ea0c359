package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/requirement"
	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fall0   = domain.SlotID(0, domain.TermFall)
	winter0 = domain.SlotID(0, domain.TermWinter)
)

func TestMove_SearchToSlotPersists(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))
	svc := NewMoveService(env.uow, env.observer)

	res, err := svc.Move(context.Background(), MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Token:       move.EncodeToken(testutil.NewTestCourse("CSE 20")),
			Source:      move.Location{Container: move.Search()},
			Destination: move.Location{Container: move.TermSlot(fall0)},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Warnings)

	stored := env.reload(t, p.ID)
	assert.Equal(t, []string{"CSE 20"}, slotTitles(t, stored, fall0))
	require.NoError(t, stored.Validate())

	ev := env.observer.last()
	assert.Equal(t, "move", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, true, ev.Fields["changed"])
	assert.Equal(t, move.SearchDroppable, ev.Fields["source"])
}

func TestMove_KeyOnlyTokenResolvesThroughCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t, testutil.NewTestRecord("MATH 19A", testutil.WithTitle("Calculus"), testutil.WithCredits(5)))
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))

	_, err := NewMoveService(env.uow).Move(context.Background(), MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Token:       move.KeyToken(domain.CatalogKey{DepartmentCode: "MATH", Number: "19A"}),
			Source:      move.Location{Container: move.Search()},
			Destination: move.Location{Container: move.TermSlot(fall0)},
		},
	})
	require.NoError(t, err)

	courses, err := env.reload(t, p.ID).CoursesInSlot(fall0)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Calculus", courses[0].Title)
}

func TestMove_NullMoveWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan",
		testutil.WithPlaced(fall0, testutil.NewTestCourse("CSE 20"))))
	before := env.reload(t, p.ID)

	loc := move.Location{Container: move.TermSlot(fall0)}
	res, err := NewMoveService(env.uow).Move(context.Background(), MoveRequest{
		PlannerID:   p.ID,
		Instruction: move.Instruction{Token: p.Courses[0].ID, Source: loc, Destination: loc},
	})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.True(t, before.UpdatedAt.Equal(env.reload(t, p.ID).UpdatedAt))
}

func TestMove_TrayToSlotConsumesTrayEntry(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))
	planners := NewPlannerService(env.planners, env.uow)
	ctx := context.Background()

	_, err := planners.AddToTray(ctx, p.ID, domain.NewCustomCourse("Study Abroad"))
	require.NoError(t, err)

	res, err := NewMoveService(env.uow).Move(ctx, MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Source:      move.Location{Container: move.Tray(), Index: 0},
			Destination: move.Location{Container: move.TermSlot(winter0)},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Tray)

	tray, err := planners.Tray(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tray)
	assert.Equal(t, []string{"Study Abroad"}, slotTitles(t, env.reload(t, p.ID), winter0))
}

func TestMove_WarnsWhenTermNotOffered(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))

	res, err := NewMoveService(env.uow).Move(context.Background(), MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Token:       move.EncodeToken(testutil.NewTestCourse("CSE 115A", testutil.WithOffered(domain.TermFall))),
			Source:      move.Location{Container: move.Search()},
			Destination: move.Location{Container: move.TermSlot(winter0)},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "CSE 115A is not usually offered in Winter")
}

func TestMove_SlotToRequirementListSavesTree(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan",
		testutil.WithPlaced(fall0, testutil.NewTestCourse("CSE 20"))))
	electives := testutil.NewTestList("Electives")
	program := env.seedProgram(t, testutil.NewTestProgram("CS", testutil.NewTestList("CS",
		testutil.WithChildren(electives))))

	res, err := NewMoveService(env.uow).Move(context.Background(), MoveRequest{
		PlannerID: p.ID,
		ProgramID: program.ID,
		Instruction: move.Instruction{
			Token:       p.Courses[0].ID,
			Source:      move.Location{Container: move.TermSlot(fall0)},
			Destination: move.Location{Container: move.RequirementList(electives.ID)},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)

	stored, err := env.programs.GetByID(context.Background(), program.ID)
	require.NoError(t, err)
	list := requirement.Find(stored.Requirements, electives.ID)
	require.NotNil(t, list)
	require.Len(t, list.Requirements, 1)
	leaf, ok := list.Requirements[0].(domain.CourseRequirement)
	require.True(t, ok)
	assert.True(t, leaf.SameAs(testutil.Leaf("CSE 20")))
	assert.Equal(t, "Course CSE 20", leaf.Title)

	// The planner itself is untouched by a slot -> list drag.
	assert.Equal(t, []string{"CSE 20"}, slotTitles(t, env.reload(t, p.ID), fall0))
}

func TestMove_EngineErrorLeavesStorageUntouched(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan",
		testutil.WithPlaced(fall0, testutil.NewTestCourse("CSE 20"))))
	svc := NewMoveService(env.uow, env.observer)

	_, err := svc.Move(context.Background(), MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Token:       "wrong-id",
			Source:      move.Location{Container: move.TermSlot(fall0)},
			Destination: move.Location{Container: move.TermSlot(winter0)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvariant)
	assert.False(t, env.observer.last().Success)
	assert.Equal(t, []string{"CSE 20"}, slotTitles(t, env.reload(t, p.ID), fall0))

	_, err = svc.Move(context.Background(), MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Token:       "{not json",
			Source:      move.Location{Container: move.Search()},
			Destination: move.Location{Container: move.TermSlot(winter0)},
		},
	})
	require.ErrorIs(t, err, move.ErrMalformedToken)
	assert.Empty(t, slotTitles(t, env.reload(t, p.ID), winter0))
}

func TestMove_RollbackWhenTrayWriteFails(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))
	ctx := context.Background()
	_, err := NewPlannerService(env.planners, env.uow).AddToTray(ctx, p.ID, domain.NewCustomCourse("Internship"))
	require.NoError(t, err)

	// Exec #1 saves the planner, #2 saves the tray.
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 2, Err: errors.New("injected tray failure")}
	_, err = NewMoveService(failUoW).Move(ctx, MoveRequest{
		PlannerID: p.ID,
		Instruction: move.Instruction{
			Source:      move.Location{Container: move.Tray(), Index: 0},
			Destination: move.Location{Container: move.TermSlot(fall0)},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected tray failure")

	assert.Empty(t, slotTitles(t, env.reload(t, p.ID), fall0), "planner write rolled back")
	tray, err := env.planners.GetTray(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, tray, 1)
}

func TestMove_UnknownPlannerOrProgram(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMoveService(env.uow)
	loc := move.Location{Container: move.TermSlot(fall0)}

	_, err := svc.Move(context.Background(), MoveRequest{PlannerID: "missing", Instruction: move.Instruction{Source: loc, Destination: loc}})
	assert.ErrorContains(t, err, "loading planner")

	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))
	_, err = svc.Move(context.Background(), MoveRequest{PlannerID: p.ID, ProgramID: "missing",
		Instruction: move.Instruction{Source: loc, Destination: loc}})
	assert.ErrorContains(t, err, "loading program")
}

func TestMove_SearchToListWithoutPlanner(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourses(t, testutil.NewTestRecord("CSE 101", testutil.WithTitle("Data Structures")))
	root := testutil.NewTestList("CS")
	program := env.seedProgram(t, testutil.NewTestProgram("CS", root))

	res, err := NewMoveService(env.uow).Move(context.Background(), MoveRequest{
		ProgramID: program.ID,
		Instruction: move.Instruction{
			Token:       move.KeyToken(domain.CatalogKey{DepartmentCode: "CSE", Number: "101"}),
			Source:      move.Location{Container: move.Search()},
			Destination: move.Location{Container: move.RequirementList(root.ID)},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Nil(t, res.Planner)

	stored, err := env.programs.GetByID(context.Background(), program.ID)
	require.NoError(t, err)
	leaves := requirement.Leaves(stored.Requirements)
	require.Len(t, leaves, 1)
	assert.Equal(t, "Data Structures", leaves[0].Title)
}
