package tasks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTaskList is returned when a task sequence is empty or contains an
// adjacent pair that violates the transition rules.
var ErrInvalidTaskList = errors.New("invalid task list")

// forbiddenSuccessors lists, for each task type, the task types that may not
// immediately follow it in a circular task list.
var forbiddenSuccessors = map[TaskType][]TaskType{
	AWAY:    {WAIT, LOAD, TAKEOFF},
	LAND:    {AWAY, TAKEOFF, LAND},
	WAIT:    {TAKEOFF, LAND, AWAY},
	LOAD:    {WAIT, LAND, LOAD, AWAY},
	TAKEOFF: {TAKEOFF, LAND, WAIT, LOAD},
}

// TaskList is a circular sequence of tasks an aircraft cycles through. The
// sequence never grows or shrinks after construction; only the current-task
// pointer moves.
type TaskList struct {
	tasks   []Task
	current int
}

// NewTaskList validates every adjacent pair in the circular sequence,
// including the wraparound from the last task back to the first, and returns
// ErrInvalidTaskList if any pair is illegal or the sequence is empty. The
// current task starts at the first element.
func NewTaskList(list []Task) (*TaskList, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidTaskList)
	}
	for i, task := range list {
		next := list[(i+1)%len(list)]
		for _, forbidden := range forbiddenSuccessors[task.Type] {
			if next.Type == forbidden {
				return nil, fmt.Errorf("%w: %s cannot be followed by %s",
					ErrInvalidTaskList, task.Type, next.Type)
			}
		}
	}
	tl := &TaskList{tasks: make([]Task, len(list))}
	copy(tl.tasks, list)
	return tl, nil
}

// Current returns the task the aircraft is presently performing.
func (tl *TaskList) Current() Task {
	return tl.tasks[tl.current]
}

// Next returns the task after the current one without advancing. The list is
// circular, so the task after the last is the first.
func (tl *TaskList) Next() Task {
	return tl.tasks[(tl.current+1)%len(tl.tasks)]
}

// MoveToNext advances the current-task pointer by one, wrapping around at the
// end of the list. This is the only mutator.
func (tl *TaskList) MoveToNext() {
	tl.current = (tl.current + 1) % len(tl.tasks)
}

// Len returns the number of tasks in the list.
func (tl *TaskList) Len() int {
	return len(tl.tasks)
}

// Equal reports structural equality: same tasks in the same order with the
// same current index.
func (tl *TaskList) Equal(other *TaskList) bool {
	if other == nil || len(tl.tasks) != len(other.tasks) || tl.current != other.current {
		return false
	}
	for i := range tl.tasks {
		if tl.tasks[i] != other.tasks[i] {
			return false
		}
	}
	return true
}

// String returns e.g. "TaskList currently on WAIT [3/5]".
func (tl *TaskList) String() string {
	return fmt.Sprintf("TaskList currently on %s [%d/%d]",
		tl.Current(), tl.current+1, len(tl.tasks))
}

// Encode returns the comma-separated encoded tasks starting from the current
// task, so that decoding the result reproduces an equivalent list whose
// current task is again the same one.
func (tl *TaskList) Encode() string {
	parts := make([]string, 0, len(tl.tasks))
	for i := 0; i < len(tl.tasks); i++ {
		parts = append(parts, tl.tasks[(tl.current+i)%len(tl.tasks)].Encode())
	}
	return strings.Join(parts, ",")
}
