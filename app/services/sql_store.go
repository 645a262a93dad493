package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gantt-go/app/models"

	"gorm.io/gorm"
)

// SQLStore keeps tasks and links in a relational database through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a new instance of SQLStore.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// AutoMigrate creates the task and link tables when they are missing.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Task{}, &models.Link{}); err != nil {
		return fmt.Errorf("migrate gantt tables: %w", err)
	}
	return nil
}

// List retrieves all tasks in display order and all links.
func (s *SQLStore) List(ctx context.Context) ([]models.Task, []models.Link, error) {
	db := s.db.WithContext(ctx)

	var tasks []models.Task
	if err := db.Order("sortorder ASC").Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, nil, fmt.Errorf("list tasks: %w", err)
	}

	var links []models.Link
	if err := db.Find(&links).Error; err != nil {
		return nil, nil, fmt.Errorf("list links: %w", err)
	}
	return tasks, links, nil
}

// CreateTask inserts the task with sortorder one past the current maximum.
func (s *SQLStore) CreateTask(ctx context.Context, in models.TaskInput) (int64, error) {
	task := models.Task{
		Text:      in.Text,
		StartDate: in.StartDate,
		Duration:  in.Duration,
		Progress:  in.Progress,
		Parent:    in.Parent,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxOrder, err := maxSortOrder(tx)
		if err != nil {
			return err
		}
		task.SortOrder = maxOrder + 1
		return tx.Create(&task).Error
	})
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return task.ID, nil
}

func maxSortOrder(tx *gorm.DB) (int, error) {
	var maxOrder int
	err := tx.Model(&models.Task{}).Select("COALESCE(MAX(sortorder), 0)").Scan(&maxOrder).Error
	if err != nil {
		return 0, fmt.Errorf("read max sortorder: %w", err)
	}
	return maxOrder, nil
}

// UpdateTask rewrites the task's fields and applies the reorder in the same transaction.
func (s *SQLStore) UpdateTask(ctx context.Context, id int64, in models.TaskInput, target string) (models.ReorderOutcome, error) {
	outcome := models.ReorderSkipped

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]any{
			"text":       in.Text,
			"start_date": in.StartDate,
			"duration":   in.Duration,
			"progress":   in.Progress,
			"parent":     in.Parent,
		}).Error
		if err != nil {
			return fmt.Errorf("update task fields: %w", err)
		}

		if strings.TrimSpace(target) == "" {
			return nil
		}
		outcome, err = reorder(tx, id, target)
		return err
	})
	if err != nil {
		return models.ReorderSkipped, fmt.Errorf("update task %d: %w", id, err)
	}
	return outcome, nil
}

// reorder shifts every task at or after the insertion point down by one and
// drops the moved task into the gap.
func reorder(tx *gorm.DB, id int64, descriptor string) (models.ReorderOutcome, error) {
	target, ok := models.ParseReorderTarget(descriptor)
	if !ok {
		return models.ReorderTargetNotFound, nil
	}

	var targetTask models.Task
	err := tx.Select("id", "sortorder").Where("id = ?", target.TaskID).Take(&targetTask).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ReorderTargetNotFound, nil
	}
	if err != nil {
		return models.ReorderSkipped, fmt.Errorf("look up reorder target: %w", err)
	}

	position := target.Position(targetTask.SortOrder)

	err = tx.Model(&models.Task{}).
		Where("sortorder >= ?", position).
		Update("sortorder", gorm.Expr("sortorder + 1")).Error
	if err != nil {
		return models.ReorderSkipped, fmt.Errorf("shift sortorder: %w", err)
	}

	err = tx.Model(&models.Task{}).Where("id = ?", id).Update("sortorder", position).Error
	if err != nil {
		return models.ReorderSkipped, fmt.Errorf("set sortorder: %w", err)
	}
	return models.ReorderMoved, nil
}

// DeleteTask removes a single task row. Links pointing at it are left alone.
func (s *SQLStore) DeleteTask(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// CreateLink inserts a link and returns the id the insert produced.
func (s *SQLStore) CreateLink(ctx context.Context, in models.LinkInput) (int64, error) {
	link := models.Link{Source: in.Source, Target: in.Target, Type: in.Type}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return 0, fmt.Errorf("create link: %w", err)
	}
	return link.ID, nil
}

func (s *SQLStore) DeleteLink(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Link{}, id).Error; err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
