package controllers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gantt-go/app/models"
)

// readForm returns the request's fields whether they came form-encoded or as
// a flat JSON object.
func readForm(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return r.Form, nil
	}

	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	form := url.Values{}
	for key, value := range body {
		if value == nil {
			continue
		}
		form.Set(key, fmt.Sprint(value))
	}
	return form, nil
}

func taskInput(form url.Values) (models.TaskInput, error) {
	var in models.TaskInput
	var err error

	in.Text = form.Get("text")
	if in.StartDate, err = models.ParseDate(form.Get("start_date")); err != nil {
		return in, err
	}
	if in.Duration, err = strconv.Atoi(strings.TrimSpace(form.Get("duration"))); err != nil {
		return in, fmt.Errorf("invalid duration: %w", err)
	}
	if in.Progress, err = optionalFloat(form.Get("progress")); err != nil {
		return in, fmt.Errorf("invalid progress: %w", err)
	}
	if in.Parent, err = optionalInt(form.Get("parent")); err != nil {
		return in, fmt.Errorf("invalid parent: %w", err)
	}
	return in, nil
}

func linkInput(form url.Values) (models.LinkInput, error) {
	var in models.LinkInput
	var err error

	if in.Source, err = strconv.ParseInt(strings.TrimSpace(form.Get("source")), 10, 64); err != nil {
		return in, fmt.Errorf("invalid source: %w", err)
	}
	if in.Target, err = strconv.ParseInt(strings.TrimSpace(form.Get("target")), 10, 64); err != nil {
		return in, fmt.Errorf("invalid target: %w", err)
	}
	in.Type = form.Get("type")
	return in, nil
}

// optionalFloat treats a missing value as zero.
func optionalFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func optionalInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
