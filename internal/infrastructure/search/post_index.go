// Package search keeps an Elasticsearch index of posts for full-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/blogicum/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type PostIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewPostIndex(es *elasticsearch.Client, index string) *PostIndex {
	return &PostIndex{ES: es, Index: index}
}

type postDoc struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Category    string `json:"category,omitempty"`
	Author      string `json:"author,omitempty"`
	PubDate     string `json:"pub_date"`
	IsPublished bool   `json:"is_published"`
}

func toDoc(p entity.Post) postDoc {
	d := postDoc{
		ID:          p.ID,
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate.UTC().Format(time.RFC3339Nano),
		IsPublished: p.IsPublished,
	}
	if p.Category != nil {
		d.Category = p.Category.Slug
	}
	if p.Author != nil {
		d.Author = p.Author.Username
	}
	return d
}

func (x *PostIndex) IndexPost(ctx context.Context, p entity.Post) error {
	b, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: strconv.FormatInt(p.ID, 10), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *PostIndex) DeletePost(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// searchQuery matches title (boosted), text and category.
func searchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "text", "category"},
			},
		},
		"size":    size,
		"_source": false,
	}
}

// SearchPostIDs returns ids of matching documents in relevance order.
func (x *PostIndex) SearchPostIDs(ctx context.Context, q string, limit int) ([]int64, error) {
	if strings.TrimSpace(q) == "" {
		return []int64{}, nil
	}
	b, err := json.Marshal(searchQuery(q, limit))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	return decodeHitIDs(res.Body)
}

func decodeHitIDs(body interface{ Read([]byte) (int, error) }) ([]int64, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
