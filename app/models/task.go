package models

import "time"

// Task is one row of the chart. Parent 0 means the task sits at the root.
type Task struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"type:varchar(255)" json:"text"`
	StartDate time.Time `gorm:"column:start_date;type:datetime" json:"-"`
	Duration  int       `json:"duration"`
	Progress  float64   `gorm:"type:float" json:"progress"`
	Parent    int64     `json:"parent"`
	SortOrder int       `gorm:"column:sortorder;index" json:"sortorder"`
}

// TableName keeps the table name the chart's demo schema uses.
func (Task) TableName() string {
	return "gantt_tasks"
}

// TaskInput carries the writable fields of a task.
type TaskInput struct {
	Text      string
	StartDate time.Time
	Duration  int
	Progress  float64
	Parent    int64
}

// TaskView is a task as the chart widget reads it.
type TaskView struct {
	ID        int64   `json:"id"`
	Text      string  `json:"text"`
	StartDate string  `json:"start_date"`
	Duration  int     `json:"duration"`
	Progress  float64 `json:"progress"`
	Parent    int64   `json:"parent"`
	SortOrder int     `json:"sortorder"`
	Open      bool    `json:"open"`
}

// View annotates the task with its display date and the expanded flag.
func (t Task) View() TaskView {
	return TaskView{
		ID:        t.ID,
		Text:      t.Text,
		StartDate: FormatDate(t.StartDate),
		Duration:  t.Duration,
		Progress:  t.Progress,
		Parent:    t.Parent,
		SortOrder: t.SortOrder,
		Open:      true,
	}
}
