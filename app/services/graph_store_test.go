package services

import (
	"context"
	"os"
	"strconv"
	"testing"

	"gantt-go/app/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// createTestGraphStore connects to the server named by NEO4J_TEST_URI and
// wipes the graph. Tests are skipped when it is unset.
func createTestGraphStore(t *testing.T) *GraphStore {
	t.Helper()

	uri := os.Getenv("NEO4J_TEST_URI")
	if uri == "" {
		t.Skip("NEO4J_TEST_URI not set")
	}
	ctx := context.Background()

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(
		os.Getenv("NEO4J_TEST_USER"), os.Getenv("NEO4J_TEST_PASSWORD"), ""))
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		t.Fatalf("Failed to reach neo4j: %v", err)
	}

	_, err = neo4j.ExecuteQuery(ctx, driver,
		"MATCH (n) WHERE n:Task OR n:Link OR n:Sequence DETACH DELETE n", nil,
		neo4j.EagerResultTransformer)
	if err != nil {
		driver.Close(ctx)
		t.Fatalf("Failed to clean graph: %v", err)
	}

	store := NewGraphStore(driver, "")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGraphStoreCreateAndReorder(t *testing.T) {
	ctx := context.Background()
	store := createTestGraphStore(t)

	var ids []int64
	for _, text := range []string{"A", "B", "C"} {
		id, err := store.CreateTask(ctx, sampleInput(text))
		if err != nil {
			t.Fatalf("CreateTask(%s) error: %v", text, err)
		}
		ids = append(ids, id)
	}

	outcome, err := store.UpdateTask(ctx, ids[2], sampleInput("C"), "next:"+strconv.FormatInt(ids[0], 10))
	if err != nil {
		t.Fatalf("UpdateTask() error: %v", err)
	}
	if outcome != models.ReorderMoved {
		t.Errorf("outcome = %v, want moved", outcome)
	}

	tasks, _, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	var order []string
	for _, task := range tasks {
		order = append(order, task.Text)
	}
	if len(order) != 3 || order[0] != "A" || order[1] != "C" || order[2] != "B" {
		t.Errorf("order = %v, want [A C B]", order)
	}
	if got := tasks[0].View().StartDate; got != "2024-03-05 00:00:00" {
		t.Errorf("start_date = %q", got)
	}

	outcome, err = store.UpdateTask(ctx, ids[1], sampleInput("B"), "424242")
	if err != nil {
		t.Fatalf("UpdateTask(missing target) error: %v", err)
	}
	if outcome != models.ReorderTargetNotFound {
		t.Errorf("outcome = %v, want target_not_found", outcome)
	}
}

func TestGraphStoreLinksAndDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestGraphStore(t)

	a, err := store.CreateTask(ctx, sampleInput("A"))
	if err != nil {
		t.Fatalf("CreateTask() error: %v", err)
	}
	b, err := store.CreateTask(ctx, sampleInput("B"))
	if err != nil {
		t.Fatalf("CreateTask() error: %v", err)
	}
	linkID, err := store.CreateLink(ctx, models.LinkInput{Source: a, Target: b, Type: "0"})
	if err != nil {
		t.Fatalf("CreateLink() error: %v", err)
	}

	if err := store.DeleteTask(ctx, b); err != nil {
		t.Fatalf("DeleteTask() error: %v", err)
	}
	tasks, links, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tasks) != 1 || len(links) != 1 {
		t.Fatalf("tasks=%d links=%d, want 1 and 1", len(tasks), len(links))
	}

	if err := store.DeleteLink(ctx, linkID); err != nil {
		t.Fatalf("DeleteLink() error: %v", err)
	}
	_, links, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links = %+v, want none", links)
	}
}

func TestAsInt64(t *testing.T) {
	if asInt64(int64(7)) != 7 || asInt64(float64(3)) != 3 || asInt64(nil) != 0 {
		t.Error("asInt64 conversions wrong")
	}
	if asFloat64(int64(2)) != 2 || asFloat64(0.5) != 0.5 || asFloat64("x") != 0 {
		t.Error("asFloat64 conversions wrong")
	}
}
