package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/spf13/pflag"
)

var slotPattern = regexp.MustCompile(`^[Yy]?(\d+)[\s:/-]*([A-Za-z]+)$`)

// slotValue is a pflag.Value holding a term slot id. It accepts the stored
// form ("quarter-0-Fall") and the friendlier "1:fall", "y2-winter" or
// "3 Spring" where years count from 1.
type slotValue struct {
	id string
}

var _ pflag.Value = (*slotValue)(nil)

func (v *slotValue) String() string { return v.id }

func (v *slotValue) Type() string { return "slot" }

func (v *slotValue) Set(s string) error {
	id, err := parseSlot(s)
	if err != nil {
		return err
	}
	v.id = id
	return nil
}

func parseSlot(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, _, ok := domain.ParseSlotID(s); ok {
		return s, nil
	}
	m := slotPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("invalid slot %q: use YEAR:TERM, e.g. 1:Fall", s)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year < 1 {
		return "", fmt.Errorf("invalid slot %q: years count from 1", s)
	}
	term := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
	if !domain.ValidTerms[term] {
		return "", fmt.Errorf("invalid slot %q: unknown term %q", s, m[2])
	}
	return domain.SlotID(year-1, domain.Term(term)), nil
}

// binderValue is a pflag.Value restricted to the known binders.
type binderValue struct {
	binder domain.Binder
	set    bool
}

var _ pflag.Value = (*binderValue)(nil)

func (v *binderValue) String() string { return string(v.binder) }

func (v *binderValue) Type() string { return "binder" }

func (v *binderValue) Set(s string) error {
	b := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if !domain.ValidBinders[b] {
		return fmt.Errorf("invalid binder %q: use ALL or AT_LEAST", s)
	}
	v.binder, v.set = domain.Binder(b), true
	return nil
}

// addSlotFlag registers a required slot flag on fs.
func addSlotFlag(fs *pflag.FlagSet, v *slotValue, name, usage string) {
	fs.Var(v, name, usage+" (YEAR:TERM, e.g. 1:Fall)")
}

// addIndexFlag registers a position flag; -1 means "append".
func addIndexFlag(fs *pflag.FlagSet, p *int) {
	fs.IntVar(p, "at", -1, "Position within the destination (default: end)")
}
