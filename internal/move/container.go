package move

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// Droppable ids understood by ParseContainer.
const (
	RequirementListPrefix = "requirement-list-"
	SearchDroppable       = "search-droppable"
	CustomDroppable       = "custom-droppable"
)

// ContainerKind says what sort of ordered holder a Container is.
type ContainerKind int

const (
	KindTermSlot ContainerKind = iota + 1
	KindTray
	KindRequirementList
	KindSearch
)

func (k ContainerKind) String() string {
	switch k {
	case KindTermSlot:
		return "term slot"
	case KindTray:
		return "custom tray"
	case KindRequirementList:
		return "requirement list"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Container identifies one source or destination of a move. ID is the term
// slot id or requirement list id; it is empty for the tray and search.
type Container struct {
	Kind ContainerKind
	ID   string
}

func TermSlot(slotID string) Container { return Container{Kind: KindTermSlot, ID: slotID} }

func Tray() Container { return Container{Kind: KindTray} }

func RequirementList(listID string) Container {
	return Container{Kind: KindRequirementList, ID: listID}
}

func Search() Container { return Container{Kind: KindSearch} }

// String returns the droppable id form of the container.
func (c Container) String() string {
	switch c.Kind {
	case KindTermSlot:
		return c.ID
	case KindTray:
		return CustomDroppable
	case KindRequirementList:
		return RequirementListPrefix + c.ID
	case KindSearch:
		return SearchDroppable
	default:
		return "unknown"
	}
}

// ParseContainer maps a droppable id back to a Container. Search droppables
// may carry a suffix (search results are rendered in several lists).
func ParseContainer(id string) (Container, error) {
	switch {
	case id == CustomDroppable:
		return Tray(), nil
	case strings.HasPrefix(id, SearchDroppable):
		return Search(), nil
	case strings.HasPrefix(id, RequirementListPrefix):
		listID := strings.TrimPrefix(id, RequirementListPrefix)
		if listID == "" {
			return Container{}, fmt.Errorf("requirement list droppable %q has no id", id)
		}
		return RequirementList(listID), nil
	}
	if _, _, ok := domain.ParseSlotID(id); ok {
		return TermSlot(id), nil
	}
	return Container{}, fmt.Errorf("unrecognised container %q", id)
}

// Location is a position inside a container.
type Location struct {
	Container Container
	Index     int
}

// Instruction describes a single drag from Source to Destination.
//
// Token is the placed-course id when the source is a term slot, and a
// serialized course (see EncodeToken) when the source is search or the tray.
// It is ignored for requirement-list sources and may be left empty for tray
// sources, in which case the tray entry at Source.Index is used.
type Instruction struct {
	Token       string
	Source      Location
	Destination Location
}
