package product_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	app "github.com/mohammadpnp/product-import/internal/application/product"
	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

type fakePayloads struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	removed []string
}

func newFakePayloads() *fakePayloads {
	return &fakePayloads{data: map[string][]byte{}}
}

func (f *fakePayloads) Save(ctx context.Context, jobID string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	key := jobID + ".csv"
	f.data[key] = data
	return key, nil
}

func (f *fakePayloads) Load(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[key]
	if !ok {
		return nil, domain.ErrPayloadNotFound
	}
	return data, nil
}

func (f *fakePayloads) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	delete(f.data, key)
	return nil
}

type fakeRegistry struct {
	mu       sync.Mutex
	writes   []domain.JobStatus
	writeErr error
	failOn   domain.JobState
}

func (f *fakeRegistry) WriteStatus(ctx context.Context, status domain.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil && (f.failOn == "" || f.failOn == status.State) {
		return f.writeErr
	}
	f.writes = append(f.writes, status)
	return nil
}

func (f *fakeRegistry) ReadStatus(ctx context.Context, jobID string) (domain.JobStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.writes) - 1; i >= 0; i-- {
		if f.writes[i].JobID == jobID {
			return f.writes[i], nil
		}
	}
	return domain.JobStatus{JobID: jobID, State: domain.JobPending}, nil
}

func (f *fakeRegistry) statuses() []domain.JobStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.JobStatus(nil), f.writes...)
}

func (f *fakeRegistry) last() domain.JobStatus {
	s := f.statuses()
	return s[len(s)-1]
}

// fakeProductStore behaves like a table keyed by the exact SKU.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[string]domain.ImportRow
	calls    int
	failCall int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[string]domain.ImportRow{}}
}

func (f *fakeProductStore) BulkUpsert(ctx context.Context, jobID string, rows []domain.ImportRow) (domain.UpsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.failCall == f.calls {
		return domain.UpsertResult{}, errors.New("connection reset by peer")
	}

	var result domain.UpsertResult
	for _, row := range rows {
		if row.Name == nil {
			return domain.UpsertResult{}, fmt.Errorf("null value in column name for sku %s", row.SKU)
		}
	}
	for _, row := range rows {
		if _, ok := f.products[row.SKU]; ok {
			result.UpdatedCount++
		} else {
			result.InsertedCount++
		}
		f.products[row.SKU] = row
	}
	return result, nil
}

func (f *fakeProductStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(ctx context.Context, eventType string) []app.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return []app.DeliveryResult{{SubscriptionID: 1, URL: "https://hooks.example/a"}}
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func strPtr(s string) *string { return &s }

func csvWithRows(n int) []byte {
	var b strings.Builder
	b.WriteString("sku,name,description,active\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "SKU-%05d,Product %d,,true\n", i, i)
	}
	return []byte(b.String())
}
