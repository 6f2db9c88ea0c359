package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// MaxStoredCourseTitle caps course titles written to disk.
const MaxStoredCourseTitle = 50

// catalogKeyPattern matches a "DEPT NUM" pair such as "CSE 101" or "MATH 19A".
var catalogKeyPattern = regexp.MustCompile(`^[A-Z]{1,5} [0-9]{1,3}[A-Z]?$`)

// CatalogKey identifies a catalog course. Numbers are strings because some
// carry letter suffixes (12L, 115A).
type CatalogKey struct {
	DepartmentCode string
	Number         string
}

func (k CatalogKey) String() string {
	return k.DepartmentCode + " " + k.Number
}

// IsZero reports whether the key lacks a department code or a number.
func (k CatalogKey) IsZero() bool {
	return k.DepartmentCode == "" || k.Number == ""
}

// ParseCatalogKey parses "CSE 101" style strings. ok is false when s does not
// look like a catalog key.
func ParseCatalogKey(s string) (CatalogKey, bool) {
	s = strings.TrimSpace(s)
	if !catalogKeyPattern.MatchString(s) {
		return CatalogKey{}, false
	}
	dept, num, _ := strings.Cut(s, " ")
	return CatalogKey{DepartmentCode: dept, Number: num}, true
}

// Course is a course record. Catalog records leave ID and Labels empty; a
// placed course carries a planner-local ID.
type Course struct {
	ID              string
	DepartmentCode  string
	Number          string
	Title           string
	Credits         int
	Description     string
	GE              []string
	QuartersOffered []Term
	Labels          []string
}

func (c Course) Key() CatalogKey {
	return CatalogKey{DepartmentCode: c.DepartmentCode, Number: c.Number}
}

// IsCustom reports whether the course was authored by the student rather than
// taken from the catalog.
func (c Course) IsCustom() bool {
	return c.Key().IsZero()
}

// DisplayName returns "DEPT NUM" for catalog courses and the title otherwise.
func (c Course) DisplayName() string {
	if !c.IsCustom() {
		return c.Key().String()
	}
	return c.Title
}

// DisplayTitle prefers the title and falls back to the catalog key.
func (c Course) DisplayTitle() string {
	return CoalesceStr(c.Title, c.Key().String())
}

// IsOfferedIn reports whether the course runs in the given term.
func (c Course) IsOfferedIn(term Term) bool {
	for _, t := range c.QuartersOffered {
		if t == term {
			return true
		}
	}
	return false
}

// HasLabel reports whether labelID is attached to the course.
func (c Course) HasLabel(labelID string) bool {
	for _, l := range c.Labels {
		if l == labelID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with c.
func (c Course) Clone() Course {
	out := c
	out.GE = slices.Clone(c.GE)
	out.QuartersOffered = slices.Clone(c.QuartersOffered)
	out.Labels = slices.Clone(c.Labels)
	return out
}

// NewCustomCourse returns the defaults used for a student-authored course.
func NewCustomCourse(title string) Course {
	return Course{
		Title:           CoalesceStr(strings.TrimSpace(title), "Custom Course"),
		Credits:         5,
		QuartersOffered: []Term{TermFall, TermWinter, TermSpring},
	}
}

// TruncateTitle shortens a title to max runes, marking the cut with "...".
func TruncateTitle(title string, max int) string {
	r := []rune(title)
	if len(r) <= max {
		return title
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Validate checks the fields a catalog record must carry.
func (c Course) Validate() error {
	if c.Credits < 0 {
		return fmt.Errorf("course %s: credits must not be negative", c.DisplayName())
	}
	if c.IsCustom() && strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("custom course requires a title")
	}
	for _, t := range c.QuartersOffered {
		if !ValidTerms[string(t)] {
			return fmt.Errorf("course %s: unknown term %q", c.DisplayName(), t)
		}
	}
	return nil
}
