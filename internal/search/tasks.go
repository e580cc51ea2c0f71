package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/schoolhub/classroom/internal/models"
)

const TaskIndex = "tasks"

var ErrDisabled = errors.New("search is disabled")

// TaskIndexer mirrors created tasks into Elasticsearch. A nil ES client
// disables both indexing and querying.
type TaskIndexer struct {
	ES *elasticsearch.Client
}

func (s *TaskIndexer) Index(ctx context.Context, task *models.Task) error {
	if s == nil || s.ES == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(task); err != nil {
		return fmt.Errorf("encode task: %w", err)
	}

	res, err := s.ES.Index(
		TaskIndex,
		&buf,
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(task.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index task: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index task: %s", res.Status())
	}
	return nil
}

func (s *TaskIndexer) Search(ctx context.Context, query string, from, size int) (int64, []models.Task, error) {
	if s == nil || s.ES == nil {
		return 0, nil, ErrDisabled
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "content"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(TaskIndex),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search tasks: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search tasks: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Task `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	found := make([]models.Task, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		found[i] = hit.Source
	}
	return r.Hits.Total.Value, found, nil
}
