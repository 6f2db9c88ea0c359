package domain

// Term is one academic term within a planner year.
type Term string

const (
	TermFall   Term = "Fall"
	TermWinter Term = "Winter"
	TermSpring Term = "Spring"
	TermSummer Term = "Summer"
)

// Terms lists the terms of a planner year in calendar order.
var Terms = []Term{TermFall, TermWinter, TermSpring, TermSummer}

// ValidTerms is the canonical set of accepted term strings.
var ValidTerms = map[string]bool{
	"Fall": true, "Winter": true, "Spring": true, "Summer": true,
}

// Binder combines the children of a requirement list.
type Binder string

const (
	BinderAll     Binder = "ALL"
	BinderAtLeast Binder = "AT_LEAST"
)

// ValidBinders is the canonical set of accepted binder strings.
var ValidBinders = map[string]bool{
	"ALL": true, "AT_LEAST": true,
}

type ProgramType string

const (
	ProgramMajor ProgramType = "MAJOR"
	ProgramMinor ProgramType = "MINOR"
)

// ValidProgramTypes is the canonical set of accepted program type strings.
var ValidProgramTypes = map[string]bool{
	"MAJOR": true, "MINOR": true,
}

type LabelColor string

const (
	LabelRed    LabelColor = "RED"
	LabelOrange LabelColor = "ORANGE"
	LabelYellow LabelColor = "YELLOW"
	LabelGreen  LabelColor = "GREEN"
	LabelBlue   LabelColor = "BLUE"
	LabelPurple LabelColor = "PURPLE"
	LabelPink   LabelColor = "PINK"
)

// LabelColors lists every label color in display order.
var LabelColors = []LabelColor{
	LabelRed, LabelOrange, LabelYellow, LabelGreen, LabelBlue, LabelPurple, LabelPink,
}

// General education codes accepted on catalog courses.
var ValidGECodes = map[string]bool{
	"c": true, "cc": true, "er": true, "im": true, "mf": true, "si": true,
	"sr": true, "ta": true, "peT": true, "peH": true, "peE": true,
	"prC": true, "prE": true, "prS": true,
}
