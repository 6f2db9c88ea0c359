package move

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// ErrMalformedToken is returned when a dragged course payload cannot be
// decoded. No part of the move is applied.
var ErrMalformedToken = errors.New("malformed drag token")

// maxTokenCredits bounds the credits a token may carry.
const maxTokenCredits = math.MaxInt32

// tokenPayload is the wire shape shared by the drag origin and the engine.
// Field names must stay as they are.
type tokenPayload struct {
	DepartmentCode  string   `json:"departmentCode"`
	Number          string   `json:"number"`
	Title           string   `json:"title"`
	Credits         float64  `json:"credits"`
	GE              []string `json:"ge"`
	QuartersOffered []string `json:"quartersOffered"`
	Description     string   `json:"description"`
	Suffix          string   `json:"suffix,omitempty"`
}

// EncodeToken serializes a course into a drag token. Identity and labels are
// not carried; the engine assigns a fresh id on insertion.
func EncodeToken(c domain.Course) string {
	return encode(c, "")
}

// EncodeTokenWithSuffix is EncodeToken with a disambiguating suffix, used when
// the same course is rendered in several search lists at once.
func EncodeTokenWithSuffix(c domain.Course, suffix string) string {
	return encode(c, suffix)
}

func encode(c domain.Course, suffix string) string {
	terms := make([]string, 0, len(c.QuartersOffered))
	for _, t := range c.QuartersOffered {
		terms = append(terms, string(t))
	}
	ge := c.GE
	if ge == nil {
		ge = []string{}
	}
	data, _ := json.Marshal(tokenPayload{
		DepartmentCode:  c.DepartmentCode,
		Number:          c.Number,
		Title:           c.Title,
		Credits:         float64(c.Credits),
		GE:              ge,
		QuartersOffered: terms,
		Description:     c.Description,
		Suffix:          suffix,
	})
	return string(data)
}

// KeyToken returns a token that only carries a catalog key. The engine fills
// in the remaining fields through its Catalog.
func KeyToken(key domain.CatalogKey) string {
	return encode(domain.Course{DepartmentCode: key.DepartmentCode, Number: key.Number}, "")
}

// DecodeToken parses a drag token into a course without an id.
func DecodeToken(token string) (domain.Course, error) {
	var p tokenPayload
	if strings.TrimSpace(token) == "" {
		return domain.Course{}, fmt.Errorf("empty token: %w", ErrMalformedToken)
	}
	if err := json.Unmarshal([]byte(token), &p); err != nil {
		return domain.Course{}, fmt.Errorf("decoding %q: %v: %w", token, err, ErrMalformedToken)
	}
	if p.Credits < 0 {
		return domain.Course{}, fmt.Errorf("negative credits in token: %w", ErrMalformedToken)
	}
	if p.Credits > maxTokenCredits || p.Credits != math.Trunc(p.Credits) {
		return domain.Course{}, fmt.Errorf("credits %v in token are not a whole number up to %d: %w",
			p.Credits, maxTokenCredits, ErrMalformedToken)
	}
	c := domain.Course{
		DepartmentCode: strings.TrimSpace(p.DepartmentCode),
		Number:         strings.TrimSpace(p.Number),
		Title:          p.Title,
		Credits:        int(p.Credits),
		Description:    p.Description,
		GE:             p.GE,
	}
	if c.Key().IsZero() && strings.TrimSpace(c.Title) == "" {
		return domain.Course{}, fmt.Errorf("token carries neither a catalog key nor a title: %w", ErrMalformedToken)
	}
	for _, t := range p.QuartersOffered {
		if !domain.ValidTerms[t] {
			return domain.Course{}, fmt.Errorf("unknown term %q in token: %w", t, ErrMalformedToken)
		}
		c.QuartersOffered = append(c.QuartersOffered, domain.Term(t))
	}
	return c, nil
}
