package tasks

import "fmt"

type TaskType int

const (
	AWAY TaskType = iota
	LAND
	WAIT
	LOAD
	TAKEOFF
)

var taskTypeNames = map[TaskType]string{
	AWAY:    "AWAY",
	LAND:    "LAND",
	WAIT:    "WAIT",
	LOAD:    "LOAD",
	TAKEOFF: "TAKEOFF",
}

func (t TaskType) String() string {
	return taskTypeNames[t]
}

// ParseTaskType maps an encoded task tag back to its TaskType.
func ParseTaskType(s string) (TaskType, bool) {
	for t, name := range taskTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Task is a single operational phase in an aircraft's task list. LoadPercent
// is only meaningful for LOAD tasks and is zero for all others. Tasks are
// immutable once constructed.
type Task struct {
	Type        TaskType
	LoadPercent int
}

func NewTask(t TaskType) Task {
	return Task{Type: t}
}

func NewLoadTask(percent int) Task {
	return Task{Type: LOAD, LoadPercent: percent}
}

// String returns the human-readable form, e.g. "LOAD at 40%" or "AWAY".
func (t Task) String() string {
	if t.Type == LOAD {
		return fmt.Sprintf("LOAD at %d%%", t.LoadPercent)
	}
	return t.Type.String()
}

// Encode returns the machine-readable form, e.g. "LOAD@40" or "AWAY".
func (t Task) Encode() string {
	if t.Type == LOAD {
		return fmt.Sprintf("LOAD@%d", t.LoadPercent)
	}
	return t.Type.String()
}
