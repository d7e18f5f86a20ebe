// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Status values found in epic and task files. Any other value read from a
// file is kept verbatim.
const (
	StatusDone       = "Done"
	StatusInProgress = "In Progress"
	StatusNotStarted = "Not Started"
	StatusTodo       = "Todo"
)

// UnknownEpic is the epic reference given to a task whose epic cannot be
// determined from its content or its filename.
const UnknownEpic = "unknown"

// Size is the effort label attached to a task.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// ParseSize maps a label onto the S/M/L/XL set, ignoring case and
// surrounding whitespace. Empty or unrecognized labels yield SizeM.
func ParseSize(label string) Size {
	switch Size(strings.ToUpper(strings.TrimSpace(label))) {
	case SizeS:
		return SizeS
	case SizeL:
		return SizeL
	case SizeXL:
		return SizeXL
	default:
		return SizeM
	}
}

// Epic is a tracked unit of work read from strategy/epics/<id>.md.
type Epic struct {
	// ID is the filename stem, unique within a project.
	ID string `json:"id" yaml:"id"`

	// Title comes from the "# Epic:" heading, or the stem when missing.
	Title string `json:"title" yaml:"title"`

	// Status is Done, In Progress, Not Started, or any author-supplied value.
	Status string `json:"status" yaml:"status"`

	// Project is the directory name of the owning project.
	Project string `json:"project" yaml:"project"`

	// FilePath is the absolute path of the source file.
	FilePath string `json:"file_path" yaml:"file_path"`

	// Priority is nil when the file carries no **Priority:** label.
	Priority *string `json:"priority" yaml:"priority"`

	// TaskCount is the number of linked checklist items in the file.
	TaskCount int `json:"task_count" yaml:"task_count"`

	// CompletedTasks counts the checked items; never exceeds TaskCount.
	CompletedTasks int `json:"completed_tasks" yaml:"completed_tasks"`
}

// Progress returns the completed fraction of the epic's checklist in [0, 1].
// An epic with no checklist reports 0.
func (e Epic) Progress() float64 {
	if e.TaskCount == 0 {
		return 0
	}
	return float64(e.CompletedTasks) / float64(e.TaskCount)
}

// Task is the smallest tracked work item, read from strategy/tasks/<id>.md.
type Task struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Status   string `json:"status" yaml:"status"`
	Size     Size   `json:"size" yaml:"size"`
	Project  string `json:"project" yaml:"project"`
	EpicID   string `json:"epic_id" yaml:"epic_id"`
	FilePath string `json:"file_path" yaml:"file_path"`
}

// Vision holds the sections of a project's VISION.md. Every field is
// independently optional: nil means the section was missing or empty.
type Vision struct {
	NorthStar      *string  `json:"north_star" yaml:"north_star"`
	Vision         *string  `json:"vision" yaml:"vision"`
	Mission        []string `json:"mission" yaml:"mission"`
	StrategicBets  []string `json:"strategic_bets" yaml:"strategic_bets"`
	NonGoals       []string `json:"non_goals" yaml:"non_goals"`
	SuccessMetrics []string `json:"success_metrics" yaml:"success_metrics"`
}

// KeyResult is a measurable outcome listed under an Objective.
type KeyResult struct {
	// ID is "KR" followed by the number used in the source text.
	ID string `json:"id" yaml:"id"`

	// Text is the key result body collapsed onto a single line.
	Text string `json:"text" yaml:"text"`
}

// Objective is one "## Objective N — Title" block of OKRs.md.
type Objective struct {
	// ID is "O" followed by the number in the header, not renumbered.
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Intent is always emitted; null when the block has no **Intent:** line.
	Intent     *string     `json:"intent" yaml:"intent"`
	KeyResults []KeyResult `json:"key_results,omitempty" yaml:"key_results,omitempty"`
}

// Project is one scanned project directory.
type Project struct {
	// ID is the directory name.
	ID string `json:"id" yaml:"id"`

	// Name is the humanized directory name ("my-app" becomes "My App").
	Name string `json:"name" yaml:"name"`

	Vision *Vision     `json:"vision,omitempty" yaml:"vision,omitempty"`
	OKRs   []Objective `json:"okrs,omitempty" yaml:"okrs,omitempty"`
}

// Snapshot is the aggregated result of one scan, as served by /api/data.
type Snapshot struct {
	Projects    []Project `json:"projects" yaml:"projects"`
	Epics       []Epic    `json:"epics" yaml:"epics"`
	Tasks       []Task    `json:"tasks" yaml:"tasks"`
	RefreshedAt string    `json:"refreshedAt" yaml:"refreshed_at"`
}

// StrPtr returns a pointer to s, or nil when s is empty.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
