package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gantt-go/app/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	taskSequence = "task"
	linkSequence = "link"
)

// GraphStore keeps tasks and links as nodes in Neo4j.
type GraphStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewGraphStore creates a new instance of GraphStore. An empty database
// selects the server's default database.
func NewGraphStore(driver neo4j.DriverWithContext, database string) *GraphStore {
	return &GraphStore{driver: driver, database: database}
}

func (s *GraphStore) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: s.database})
}

// List retrieves all tasks in display order and all links.
func (s *GraphStore) List(ctx context.Context) ([]models.Task, []models.Link, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	tasks, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task) "+
				"RETURN t.id, t.text, t.start_date, t.duration, t.progress, t.parent, t.sortorder "+
				"ORDER BY t.sortorder ASC, t.id ASC",
			nil,
		)
		if err != nil {
			return nil, err
		}

		var tasks []models.Task
		for res.Next(ctx) {
			tasks = append(tasks, taskFromValues(res.Record().Values))
		}
		return tasks, res.Err()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list tasks: %w", err)
	}

	links, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (l:Link) RETURN l.id, l.source, l.target, l.type",
			nil,
		)
		if err != nil {
			return nil, err
		}

		var links []models.Link
		for res.Next(ctx) {
			v := res.Record().Values
			links = append(links, models.Link{
				ID:     asInt64(v[0]),
				Source: asInt64(v[1]),
				Target: asInt64(v[2]),
				Type:   asString(v[3]),
			})
		}
		return links, res.Err()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list links: %w", err)
	}

	return tasks.([]models.Task), links.([]models.Link), nil
}

// CreateTask adds a task after all others and returns its id.
func (s *GraphStore) CreateTask(ctx context.Context, in models.TaskInput) (int64, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	id, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (t:Task) RETURN coalesce(max(t.sortorder), 0)", nil)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		sortOrder := asInt64(record.Values[0]) + 1

		id, err := nextID(ctx, tx, taskSequence)
		if err != nil {
			return nil, err
		}

		_, err = tx.Run(ctx,
			"CREATE (t:Task {id: $id, text: $text, start_date: $start_date, duration: $duration, "+
				"progress: $progress, parent: $parent, sortorder: $sortorder})",
			map[string]any{
				"id":         id,
				"text":       in.Text,
				"start_date": in.StartDate,
				"duration":   int64(in.Duration),
				"progress":   in.Progress,
				"parent":     in.Parent,
				"sortorder":  sortOrder,
			},
		)
		return id, err
	})
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return id.(int64), nil
}

// UpdateTask rewrites the task's properties and applies the reorder in the same transaction.
func (s *GraphStore) UpdateTask(ctx context.Context, id int64, in models.TaskInput, target string) (models.ReorderOutcome, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	outcome, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id}) "+
				"SET t.text = $text, t.start_date = $start_date, t.duration = $duration, "+
				"t.progress = $progress, t.parent = $parent",
			map[string]any{
				"id":         id,
				"text":       in.Text,
				"start_date": in.StartDate,
				"duration":   int64(in.Duration),
				"progress":   in.Progress,
				"parent":     in.Parent,
			},
		)
		if err != nil {
			return models.ReorderSkipped, err
		}

		if strings.TrimSpace(target) == "" {
			return models.ReorderSkipped, nil
		}
		return reorderNodes(ctx, tx, id, target)
	})
	if err != nil {
		return models.ReorderSkipped, fmt.Errorf("update task %d: %w", id, err)
	}
	return outcome.(models.ReorderOutcome), nil
}

func reorderNodes(ctx context.Context, tx neo4j.ManagedTransaction, id int64, descriptor string) (models.ReorderOutcome, error) {
	target, ok := models.ParseReorderTarget(descriptor)
	if !ok {
		return models.ReorderTargetNotFound, nil
	}

	res, err := tx.Run(ctx,
		"MATCH (t:Task {id: $id}) RETURN t.sortorder",
		map[string]any{"id": target.TaskID},
	)
	if err != nil {
		return models.ReorderSkipped, err
	}
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return models.ReorderSkipped, err
		}
		return models.ReorderTargetNotFound, nil
	}
	position := int64(target.Position(int(asInt64(res.Record().Values[0]))))

	_, err = tx.Run(ctx,
		"MATCH (t:Task) WHERE t.sortorder >= $position SET t.sortorder = t.sortorder + 1",
		map[string]any{"position": position},
	)
	if err != nil {
		return models.ReorderSkipped, err
	}

	_, err = tx.Run(ctx,
		"MATCH (t:Task {id: $id}) SET t.sortorder = $position",
		map[string]any{"id": id, "position": position},
	)
	if err != nil {
		return models.ReorderSkipped, err
	}
	return models.ReorderMoved, nil
}

// DeleteTask removes the task node. Link nodes naming it are kept.
func (s *GraphStore) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteNode(ctx, "Task", id)
}

// CreateLink adds a link node and returns its id.
func (s *GraphStore) CreateLink(ctx context.Context, in models.LinkInput) (int64, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	id, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		id, err := nextID(ctx, tx, linkSequence)
		if err != nil {
			return nil, err
		}
		_, err = tx.Run(ctx,
			"CREATE (l:Link {id: $id, source: $source, target: $target, type: $type})",
			map[string]any{
				"id":     id,
				"source": in.Source,
				"target": in.Target,
				"type":   in.Type,
			},
		)
		return id, err
	})
	if err != nil {
		return 0, fmt.Errorf("create link: %w", err)
	}
	return id.(int64), nil
}

func (s *GraphStore) DeleteLink(ctx context.Context, id int64) error {
	return s.deleteNode(ctx, "Link", id)
}

func (s *GraphStore) deleteNode(ctx context.Context, label string, id int64) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (n:"+label+" {id: $id}) DETACH DELETE n",
			map[string]any{"id": id},
		)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", strings.ToLower(label), id, err)
	}
	return nil
}

// Close shuts the driver down.
func (s *GraphStore) Close() error {
	return s.driver.Close(context.Background())
}

// nextID allocates the next integer id for a node kind.
func nextID(ctx context.Context, tx neo4j.ManagedTransaction, name string) (int64, error) {
	res, err := tx.Run(ctx,
		"MERGE (s:Sequence {name: $name}) "+
			"ON CREATE SET s.value = 0 "+
			"SET s.value = s.value + 1 "+
			"RETURN s.value",
		map[string]any{"name": name},
	)
	if err != nil {
		return 0, err
	}
	record, err := res.Single(ctx)
	if err != nil {
		return 0, err
	}
	return asInt64(record.Values[0]), nil
}

func taskFromValues(v []any) models.Task {
	var start time.Time
	if t, ok := v[2].(time.Time); ok {
		start = t
	}
	return models.Task{
		ID:        asInt64(v[0]),
		Text:      asString(v[1]),
		StartDate: start,
		Duration:  int(asInt64(v[3])),
		Progress:  asFloat64(v[4]),
		Parent:    asInt64(v[5]),
		SortOrder: int(asInt64(v[6])),
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
