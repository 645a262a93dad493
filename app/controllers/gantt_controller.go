package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gantt-go/app/middleware"
	"gantt-go/app/models"
	"gantt-go/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// GanttController handles HTTP requests for the chart's tasks and links.
type GanttController struct {
	Store services.Store
	log   *zap.SugaredLogger
}

// NewGanttController creates a new GanttController.
func NewGanttController(store services.Store, log *zap.SugaredLogger) *GanttController {
	return &GanttController{Store: store, log: log}
}

// GetData handles GET /data.
func (c *GanttController) GetData(w http.ResponseWriter, r *http.Request) {
	tasks, links, err := c.Store.List(r.Context())
	if err != nil {
		c.fail(w, r, http.StatusInternalServerError, "list", err)
		return
	}

	resp := models.DataResponse{
		Data:        make([]models.TaskView, 0, len(tasks)),
		Collections: models.Collections{Links: links},
	}
	for _, t := range tasks {
		resp.Data = append(resp.Data, t.View())
	}
	if resp.Collections.Links == nil {
		resp.Collections.Links = []models.Link{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTask handles POST /data/task.
func (c *GanttController) CreateTask(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "create task", err)
		return
	}
	in, err := taskInput(form)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "create task", err)
		return
	}

	id, err := c.Store.CreateTask(r.Context(), in)
	if err != nil {
		c.fail(w, r, http.StatusInternalServerError, "create task", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ActionResponse{Success: true, RequestID: id})
}

// UpdateTask handles PUT /data/task/{id}.
func (c *GanttController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "update task", err)
		return
	}
	form, err := readForm(r)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "update task", err)
		return
	}
	in, err := taskInput(form)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "update task", err)
		return
	}

	target := form.Get("target")
	outcome, err := c.Store.UpdateTask(r.Context(), id, in, target)
	if err != nil {
		c.fail(w, r, http.StatusInternalServerError, "update task", err)
		return
	}
	if outcome == models.ReorderTargetNotFound {
		c.log.Debugw("reorder target not found",
			"requestID", middleware.RequestID(r.Context()),
			"task", id,
			"target", target,
		)
	}
	writeJSON(w, http.StatusOK, models.ActionResponse{Success: true})
}

// DeleteTask handles DELETE /data/task/{id}.
func (c *GanttController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "delete task", err)
		return
	}
	if err := c.Store.DeleteTask(r.Context(), id); err != nil {
		c.fail(w, r, http.StatusInternalServerError, "delete task", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ActionResponse{Success: true})
}

// CreateLink handles POST /data/link.
func (c *GanttController) CreateLink(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "create link", err)
		return
	}
	in, err := linkInput(form)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "create link", err)
		return
	}

	id, err := c.Store.CreateLink(r.Context(), in)
	if err != nil {
		c.fail(w, r, http.StatusInternalServerError, "create link", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ActionResponse{Success: true, RequestID: id})
}

// DeleteLink handles DELETE /data/link/{id}.
func (c *GanttController) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		c.fail(w, r, http.StatusBadRequest, "delete link", err)
		return
	}
	if err := c.Store.DeleteLink(r.Context(), id); err != nil {
		c.fail(w, r, http.StatusInternalServerError, "delete link", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ActionResponse{Success: true})
}

// fail logs the error and answers with the generic failure envelope.
func (c *GanttController) fail(w http.ResponseWriter, r *http.Request, status int, op string, err error) {
	c.log.Errorw("request failed",
		"requestID", middleware.RequestID(r.Context()),
		"op", op,
		"error", err,
	)
	writeJSON(w, status, models.ActionResponse{Success: false})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
