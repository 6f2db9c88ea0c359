package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/move"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerService_CreateGetList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlannerService(env.planners, env.uow, env.observer)
	ctx := context.Background()

	p, err := svc.Create(ctx, "My Plan", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultYears, p.Years)
	assert.Len(t, p.Labels, len(domain.LabelColors))

	got, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Plan", got.Title)

	_, err = svc.Create(ctx, "", 2)
	require.NoError(t, err)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, got := range all {
		if got.ID != p.ID {
			assert.Equal(t, "Planner", got.Title)
			assert.Equal(t, 2, got.Years)
		}
	}

	ev := env.observer.last()
	assert.Equal(t, "create-planner", ev.Name)
	assert.NotEmpty(t, ev.Fields["planner_id"])
}

func TestPlannerService_Update(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlannerService(env.planners, env.uow)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Old"))
	ctx := context.Background()

	title, notes := "New", "see advisor in spring"
	got, err := svc.Update(ctx, p.ID, PlannerPatch{Title: &title, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	stored := env.reload(t, p.ID)
	assert.Equal(t, "New", stored.Title)
	assert.Equal(t, notes, stored.Notes)

	blank := "  "
	_, err = svc.Update(ctx, p.ID, PlannerPatch{Title: &blank})
	assert.ErrorContains(t, err, "must not be empty")

	_, err = svc.Update(ctx, "missing", PlannerPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlannerService_Delete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlannerService(env.planners, env.uow)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	_, err := svc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), p.ID), repository.ErrNotFound)
}

func TestPlannerService_RemoveAndUpdateCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlannerService(env.planners, env.uow)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan",
		testutil.WithPlaced(fall0, testutil.NewTestCourse("CSE 20")),
		testutil.WithPlaced(fall0, domain.NewCustomCourse("Research"))))
	ctx := context.Background()
	customID := p.Slots[0].Courses[1]

	title, credits := strings.Repeat("x", 80), 2
	got, err := svc.UpdateCourse(ctx, p.ID, customID, CoursePatch{Title: &title, Credits: &credits})
	require.NoError(t, err)
	c, ok := got.CourseByID(customID)
	require.True(t, ok)
	assert.Len(t, c.Title, domain.MaxStoredCourseTitle)
	assert.Equal(t, 2, c.Credits)

	negative := -1
	_, err = svc.UpdateCourse(ctx, p.ID, customID, CoursePatch{Credits: &negative})
	assert.Error(t, err)

	got, err = svc.RemoveCourse(ctx, p.ID, fall0, 0)
	require.NoError(t, err)
	assert.Len(t, got.Courses, 1)
	assert.Equal(t, []string{customID}, env.reload(t, p.ID).Slots[0].Courses)

	_, err = svc.RemoveCourse(ctx, p.ID, fall0, 5)
	assert.ErrorIs(t, err, domain.ErrInvariant)
}

func TestPlannerService_Labels(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlannerService(env.planners, env.uow)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan",
		testutil.WithPlaced(fall0, testutil.NewTestCourse("CSE 20"))))
	ctx := context.Background()
	courseID, labelID := p.Courses[0].ID, p.Labels[0].ID

	got, err := svc.RenameLabel(ctx, p.ID, labelID, "Major")
	require.NoError(t, err)
	l, _ := got.LabelByID(labelID)
	assert.Equal(t, "Major", l.Name)

	got, err = svc.ToggleLabel(ctx, p.ID, courseID, labelID)
	require.NoError(t, err)
	c, _ := got.CourseByID(courseID)
	assert.Equal(t, []string{labelID}, c.Labels)

	stored := env.reload(t, p.ID)
	c, _ = stored.CourseByID(courseID)
	assert.True(t, c.HasLabel(labelID))
	l, _ = stored.LabelByID(labelID)
	assert.Equal(t, "Major", l.Name)

	got, err = svc.ToggleLabel(ctx, p.ID, courseID, labelID)
	require.NoError(t, err)
	c, _ = got.CourseByID(courseID)
	assert.Empty(t, c.Labels)

	_, err = svc.RenameLabel(ctx, p.ID, labelID, strings.Repeat("n", domain.MaxLabelName+1))
	assert.Error(t, err)
}

func TestPlannerService_Tray(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlannerService(env.planners, env.uow, env.observer)
	p := env.seedPlanner(t, testutil.NewTestPlanner("Plan"))
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := svc.AddToTray(ctx, p.ID, domain.NewCustomCourse(title))
		require.NoError(t, err)
	}
	_, err := svc.AddToTray(ctx, p.ID, domain.NewCustomCourse("D"))
	assert.ErrorIs(t, err, move.ErrTrayFull)
	assert.False(t, env.observer.last().Success)

	tray, err := svc.Tray(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tray, 3)
	assert.Equal(t, "C", tray[0].Title, "newest first")

	tray, err = svc.RemoveFromTray(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, tray, 2)
	assert.Equal(t, 2, env.observer.last().Fields["tray_size"])

	_, err = svc.RemoveFromTray(ctx, p.ID, 9)
	assert.ErrorIs(t, err, domain.ErrInvariant)
}
