package domain

// MaxLabelName caps the length of a label's display name.
const MaxLabelName = 25

// Label tags placed courses within one planner.
type Label struct {
	ID    string
	Name  string
	Color LabelColor
}

// DefaultLabels returns one unnamed label per color. newID supplies the ids.
func DefaultLabels(newID func() string) []Label {
	labels := make([]Label, 0, len(LabelColors))
	for _, c := range LabelColors {
		labels = append(labels, Label{ID: newID(), Color: c})
	}
	return labels
}
