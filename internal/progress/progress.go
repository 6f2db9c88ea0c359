// Package progress turns per-program requirement satisfaction into
// completion percentages.
package progress

import (
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/requirement"
)

// ProgramProgress is the completion state of one program.
type ProgramProgress struct {
	Program    *domain.Program
	Satisfied  int
	Total      int
	Percentage float64
}

// Summary holds per-program percentages keyed by program id and their mean.
type Summary struct {
	Average   float64
	ByProgram map[string]float64
	Programs  []ProgramProgress
}

// Evaluate counts the satisfied immediate children of the program's root.
// Nested lists count as one child each.
func Evaluate(program *domain.Program, courses []domain.Course) ProgramProgress {
	return evaluate(program, requirement.NewEvaluator(courses))
}

func evaluate(program *domain.Program, ev *requirement.Evaluator) ProgramProgress {
	pp := ProgramProgress{Program: program}
	if program == nil || program.Requirements == nil {
		return pp
	}
	root := program.Requirements
	pp.Total = len(root.Requirements)
	pp.Satisfied = ev.SatisfiedCount(root)
	if pp.Total > 0 {
		pp.Percentage = float64(pp.Satisfied) / float64(pp.Total) * 100
	}
	return pp
}

// ProgramPercentage returns the program's completion in [0, 100]. A program
// without requirements is at 0.
func ProgramPercentage(program *domain.Program, courses []domain.Course) float64 {
	return Evaluate(program, courses).Percentage
}

// AverageAcrossPrograms returns the mean of ProgramPercentage over programs,
// or 0 when there are none.
func AverageAcrossPrograms(programs []*domain.Program, courses []domain.Course) float64 {
	return Summarize(programs, courses).Average
}

// Summarize evaluates every program once against the same course set.
func Summarize(programs []*domain.Program, courses []domain.Course) Summary {
	s := Summary{ByProgram: make(map[string]float64, len(programs))}
	if len(programs) == 0 {
		return s
	}
	ev := requirement.NewEvaluator(courses)
	var sum float64
	for _, p := range programs {
		pp := evaluate(p, ev)
		s.Programs = append(s.Programs, pp)
		if p != nil {
			s.ByProgram[p.ID] = pp.Percentage
		}
		sum += pp.Percentage
	}
	s.Average = sum / float64(len(programs))
	return s
}
