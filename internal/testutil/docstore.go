package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeDocStore is an in-memory document store speaking the same HTTP
// dialect as the real backend: GET/PUT/DELETE on "/<path>.json", shallow
// key listings, orderBy/startAt/endAt range queries, and POST push with a
// generated key. Tests point a store.Client at its URL.
type FakeDocStore struct {
	mu      sync.Mutex
	root    map[string]interface{}
	pushSeq int
	server  *httptest.Server

	// FailNext makes the next request answer 500, for error path tests.
	FailNext bool
}

// NewFakeDocStore starts the fake store; it is torn down with the test.
func NewFakeDocStore(t *testing.T) *FakeDocStore {
	t.Helper()

	f := &FakeDocStore{root: make(map[string]interface{})}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// URL is the base URL to hand to store.NewClient.
func (f *FakeDocStore) URL() string {
	return f.server.URL
}

// Seed writes a document directly, bypassing HTTP.
func (f *FakeDocStore) Seed(t *testing.T, path string, value interface{}) {
	t.Helper()

	b, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("Failed to marshal seed value: %v", err)
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("Failed to unmarshal seed value: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.set(strings.Split(path, "/"), doc)
}

// Document reads a stored document back into out; reports found.
func (f *FakeDocStore) Document(t *testing.T, path string, out interface{}) bool {
	t.Helper()

	f.mu.Lock()
	doc, ok := f.lookup(strings.Split(path, "/"))
	f.mu.Unlock()
	if !ok {
		return false
	}

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal stored document: %v", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("Failed to decode stored document: %v", err)
	}
	return true
}

func (f *FakeDocStore) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailNext {
		f.FailNext = false
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	if !strings.HasSuffix(path, ".json") {
		http.Error(w, `{"error":"bad path"}`, http.StatusBadRequest)
		return
	}
	segments := strings.Split(strings.TrimSuffix(path, ".json"), "/")

	switch r.Method {
	case http.MethodGet:
		f.handleGet(w, r, segments)
	case http.MethodPut:
		f.handlePut(w, r, segments)
	case http.MethodPost:
		f.handlePost(w, r, segments)
	case http.MethodDelete:
		f.delete(segments)
		w.Write([]byte("null"))
	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

func (f *FakeDocStore) handleGet(w http.ResponseWriter, r *http.Request, segments []string) {
	doc, ok := f.lookup(segments)
	if !ok {
		w.Write([]byte("null"))
		return
	}

	q := r.URL.Query()

	if q.Get("shallow") == "true" {
		collection, isMap := doc.(map[string]interface{})
		if !isMap {
			json.NewEncoder(w).Encode(doc)
			return
		}
		keys := make(map[string]bool, len(collection))
		for key := range collection {
			keys[key] = true
		}
		json.NewEncoder(w).Encode(keys)
		return
	}

	if orderBy := q.Get("orderBy"); orderBy != "" {
		collection, isMap := doc.(map[string]interface{})
		if !isMap {
			w.Write([]byte("null"))
			return
		}
		field := unquote(orderBy)
		startAt, hasStart := queryBound(q, "startAt")
		endAt, hasEnd := queryBound(q, "endAt")

		filtered := make(map[string]interface{})
		for key, child := range collection {
			value := key
			if field != "$key" {
				childMap, ok := child.(map[string]interface{})
				if !ok {
					continue
				}
				s, ok := childMap[field].(string)
				if !ok {
					continue
				}
				value = s
			}
			if hasStart && value < startAt {
				continue
			}
			if hasEnd && value > endAt {
				continue
			}
			filtered[key] = child
		}
		json.NewEncoder(w).Encode(filtered)
		return
	}

	json.NewEncoder(w).Encode(doc)
}

func (f *FakeDocStore) handlePut(w http.ResponseWriter, r *http.Request, segments []string) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}
	f.set(segments, doc)
	json.NewEncoder(w).Encode(doc)
}

func (f *FakeDocStore) handlePost(w http.ResponseWriter, r *http.Request, segments []string) {
	doc, ok := decodeBody(w, r)
	if !ok {
		return
	}
	f.pushSeq++
	key := fmt.Sprintf("-push%04d", f.pushSeq)
	f.set(append(append([]string{}, segments...), key), doc)
	json.NewEncoder(w).Encode(map[string]string{"name": key})
}

func decodeBody(w http.ResponseWriter, r *http.Request) (interface{}, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, `{"error":"unreadable body"}`, http.StatusBadRequest)
		return nil, false
	}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

// lookup walks the tree; caller holds the lock. Array nodes accept numeric
// segments, matching how the store addresses list elements.
func (f *FakeDocStore) lookup(segments []string) (interface{}, bool) {
	var current interface{} = f.root
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]interface{}:
			child, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = child
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// set writes at a path, creating intermediate objects; caller holds the
// lock. An existing array accepts numeric segments and grows with nulls
// when the index is past the end.
func (f *FakeDocStore) set(segments []string, doc interface{}) {
	setChild(f.root, segments, doc)
}

func setChild(node map[string]interface{}, segments []string, doc interface{}) {
	segment := segments[0]
	if len(segments) == 1 {
		node[segment] = doc
		return
	}

	if arr, ok := node[segment].([]interface{}); ok {
		if index, err := strconv.Atoi(segments[1]); err == nil && index >= 0 {
			for len(arr) <= index {
				arr = append(arr, nil)
			}
			node[segment] = arr
			if len(segments) == 2 {
				arr[index] = doc
				return
			}
			child, ok := arr[index].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				arr[index] = child
			}
			setChild(child, segments[2:], doc)
			return
		}
	}

	child, ok := node[segment].(map[string]interface{})
	if !ok {
		child = make(map[string]interface{})
		node[segment] = child
	}
	setChild(child, segments[1:], doc)
}

func (f *FakeDocStore) delete(segments []string) {
	node := f.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]interface{})
		if !ok {
			return
		}
		node = child
	}
	delete(node, segments[len(segments)-1])
}

func queryBound(q map[string][]string, name string) (string, bool) {
	values, ok := q[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return unquote(values[0]), true
}

func unquote(v string) string {
	var s string
	if err := json.Unmarshal([]byte(v), &s); err != nil {
		return v
	}
	return s
}

// SortedKeys returns the keys of a collection in order, for assertions.
func (f *FakeDocStore) SortedKeys(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.lookup(strings.Split(path, "/"))
	if !ok {
		return nil
	}
	collection, ok := doc.(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(collection))
	for key := range collection {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
