package progress

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(dept, num string) domain.CourseRequirement {
	return domain.CourseRequirement{DepartmentCode: dept, Number: num}
}

func course(dept, num string) domain.Course {
	return domain.Course{DepartmentCode: dept, Number: num, Title: dept + " " + num, Credits: 5}
}

func program(id string, root *domain.RequirementList) *domain.Program {
	return &domain.Program{ID: id, Name: id, Type: domain.ProgramMajor, Requirements: root}
}

func TestProgramPercentage_ScenarioB(t *testing.T) {
	root := &domain.RequirementList{
		ID: "root", Binder: domain.BinderAtLeast, AtLeast: 2,
		Requirements: []domain.Requirement{leaf("CSE", "101"), leaf("CSE", "102"), leaf("CSE", "103")},
	}
	pct := ProgramPercentage(program("cs", root), []domain.Course{course("CSE", "101"), course("CSE", "103")})
	assert.InDelta(t, 66.67, pct, 0.01)
}

func TestProgramPercentage_EmptyAndNil(t *testing.T) {
	empty := program("empty", &domain.RequirementList{ID: "root", Binder: domain.BinderAll})
	assert.Equal(t, 0.0, ProgramPercentage(empty, []domain.Course{course("CSE", "101")}))
	assert.Equal(t, 0.0, ProgramPercentage(program("nil", nil), nil))
	assert.Equal(t, 0.0, ProgramPercentage(nil, nil))
}

func TestProgramPercentage_CountsImmediateChildrenOnly(t *testing.T) {
	nested := &domain.RequirementList{
		ID: "electives", Binder: domain.BinderAll,
		Requirements: []domain.Requirement{leaf("CSE", "130"), leaf("CSE", "140"), leaf("CSE", "150")},
	}
	root := &domain.RequirementList{
		ID: "root", Binder: domain.BinderAll,
		Requirements: []domain.Requirement{leaf("CSE", "101"), nested},
	}
	p := program("cs", root)

	// Two of three nested leaves do not move the needle.
	pp := Evaluate(p, []domain.Course{course("CSE", "101"), course("CSE", "130"), course("CSE", "140")})
	assert.Equal(t, 1, pp.Satisfied)
	assert.Equal(t, 2, pp.Total)
	assert.Equal(t, 50.0, pp.Percentage)

	pp = Evaluate(p, []domain.Course{course("CSE", "101"), course("CSE", "130"), course("CSE", "140"), course("CSE", "150")})
	assert.Equal(t, 100.0, pp.Percentage)
}

func TestAverageAcrossPrograms(t *testing.T) {
	assert.Equal(t, 0.0, AverageAcrossPrograms(nil, nil))

	major := program("major", &domain.RequirementList{
		ID: "m", Binder: domain.BinderAll,
		Requirements: []domain.Requirement{leaf("CSE", "101"), leaf("CSE", "102")},
	})
	minor := program("minor", &domain.RequirementList{
		ID: "n", Binder: domain.BinderAll,
		Requirements: []domain.Requirement{leaf("MATH", "19A")},
	})
	courses := []domain.Course{course("CSE", "101"), course("MATH", "19A")}

	assert.Equal(t, 75.0, AverageAcrossPrograms([]*domain.Program{major, minor}, courses))

	s := Summarize([]*domain.Program{major, minor}, courses)
	assert.Equal(t, 75.0, s.Average)
	assert.Equal(t, map[string]float64{"major": 50, "minor": 100}, s.ByProgram)
	require.Len(t, s.Programs, 2)
	assert.Same(t, major, s.Programs[0].Program)
}

func TestSummarize_NoPrograms(t *testing.T) {
	s := Summarize(nil, []domain.Course{course("CSE", "101")})
	assert.Equal(t, 0.0, s.Average)
	assert.Empty(t, s.ByProgram)
	assert.Empty(t, s.Programs)
}
