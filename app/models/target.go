package models

import (
	"strconv"
	"strings"
)

// NextPrefix marks a reorder target as "place after this task".
const NextPrefix = "next:"

// ReorderTarget says where a moved task lands relative to another task.
type ReorderTarget struct {
	TaskID int64
	After  bool
}

// ParseReorderTarget decodes "<id>" or "next:<id>". ok is false when the
// descriptor names no usable task id.
func ParseReorderTarget(s string) (target ReorderTarget, ok bool) {
	s = strings.TrimSpace(s)
	if rest, found := strings.CutPrefix(s, NextPrefix); found {
		target.After = true
		s = rest
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ReorderTarget{}, false
	}
	target.TaskID = id
	return target, true
}

// Position returns the insertion point given the target task's current sortorder.
func (t ReorderTarget) Position(targetOrder int) int {
	if t.After {
		return targetOrder + 1
	}
	return targetOrder
}

// ReorderOutcome reports what a reorder step did.
type ReorderOutcome int

const (
	// ReorderSkipped means no target was supplied.
	ReorderSkipped ReorderOutcome = iota
	ReorderMoved
	ReorderTargetNotFound
)

func (o ReorderOutcome) String() string {
	switch o {
	case ReorderMoved:
		return "moved"
	case ReorderTargetNotFound:
		return "target_not_found"
	default:
		return "skipped"
	}
}
