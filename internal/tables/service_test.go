package tables

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"cafemenu-backend/internal/models"
	"cafemenu-backend/internal/repository"
)

// fakeTableRepo artışı mutex altında yapar: mağaza sözleşmesindeki atomik
// increment'in bellek içi karşılığı.
type fakeTableRepo struct {
	mu     sync.Mutex
	seq    uint
	tables map[uint]models.Table
	nowSeq int64 // CreatedAt çakışmasın diye monoton artan sahte saat
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[uint]models.Table)}
}

func (f *fakeTableRepo) ListByRecency(ctx context.Context) ([]models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Table, 0, len(f.tables))
	for _, t := range f.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeTableRepo) GetByID(ctx context.Context, id uint) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTableRepo) Create(ctx context.Context, t *models.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.nowSeq++
	t.ID = f.seq
	t.CreatedAt = time.Unix(f.nowSeq, 0)
	f.tables[t.ID] = *t
	return nil
}

func (f *fakeTableRepo) IncrementScans(ctx context.Context, publicID string, at time.Time) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tables {
		if t.PublicID == publicID {
			t.Scans++
			scanAt := at
			t.LastScan = &scanAt
			f.tables[id] = t
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTableRepo) ResetScans(ctx context.Context, id uint) (*models.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Scans = 0
	t.LastScan = nil
	f.tables[id] = t
	return &t, nil
}

func (f *fakeTableRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tables, id)
	return nil
}

func newTestService(repo repository.TableRepository) *Service {
	return NewService(repo, testLinkBuilder())
}

func TestCreate_NameValidation(t *testing.T) {
	svc := newTestService(newFakeTableRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, ""); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Create(\"\") error = %v, want ErrInvalidName", err)
	}
	if _, err := svc.Create(ctx, "   "); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Create(blank) error = %v, want ErrInvalidName", err)
	}
	if _, err := svc.Create(ctx, strings.Repeat("a", 31)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Create(31 chars) error = %v, want ErrInvalidName", err)
	}

	// 30 karakter sınırda geçerli; Türkçe karakterler rune olarak sayılır
	if _, err := svc.Create(ctx, strings.Repeat("ş", 30)); err != nil {
		t.Errorf("Create(30 runes) error = %v", err)
	}
}

func TestCreate_InitialState(t *testing.T) {
	svc := newTestService(newFakeTableRepo())

	tbl, err := svc.Create(context.Background(), "Masa 1")
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if tbl.Scans != 0 {
		t.Errorf("scans = %d, want 0", tbl.Scans)
	}
	if tbl.LastScan != nil {
		t.Errorf("lastScan = %v, want nil", tbl.LastScan)
	}
	if tbl.PublicID == "" {
		t.Error("publicID not assigned")
	}
}

func TestRecordScan_ConcurrentNoLostUpdates(t *testing.T) {
	svc := newTestService(newFakeTableRepo())
	ctx := context.Background()

	tbl, err := svc.Create(ctx, "Masa 1")
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}

	const scans = 100
	var wg sync.WaitGroup
	wg.Add(scans)
	for i := 0; i < scans; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.RecordScan(ctx, tbl.PublicID); err != nil {
				t.Errorf("RecordScan error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, tbl.ID)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if got.Scans != scans {
		t.Errorf("scans = %d, want exactly %d", got.Scans, scans)
	}
	if got.LastScan == nil {
		t.Error("lastScan not set after scans")
	}
}

func TestRecordScan_NotFound(t *testing.T) {
	svc := newTestService(newFakeTableRepo())

	_, err := svc.RecordScan(context.Background(), "yok-boyle-bir-masa")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("RecordScan error = %v, want ErrNotFound", err)
	}
}

func TestEndToEnd_ScanAndReset(t *testing.T) {
	svc := newTestService(newFakeTableRepo())
	ctx := context.Background()

	// Her çağrıda bir dakika ilerleyen sahte saat: lastScan'in tam olarak
	// üçüncü taramanın anına eşit olduğu doğrulanabilsin
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}

	tbl, err := svc.Create(ctx, "Masa 1")
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}

	var last *models.Table
	for i := 0; i < 3; i++ {
		last, err = svc.RecordScan(ctx, tbl.PublicID)
		if err != nil {
			t.Fatalf("RecordScan %d error = %v", i+1, err)
		}
	}
	if last.Scans != 3 {
		t.Errorf("scans = %d, want 3", last.Scans)
	}
	if last.LastScan == nil {
		t.Fatal("lastScan not set")
	}
	thirdScanAt := base.Add(3 * time.Minute)
	if !last.LastScan.Equal(thirdScanAt) {
		t.Errorf("lastScan = %v, want time of third scan %v", last.LastScan, thirdScanAt)
	}

	reset, err := svc.ResetScans(ctx, tbl.ID)
	if err != nil {
		t.Fatalf("ResetScans error = %v", err)
	}
	if reset.Scans != 0 {
		t.Errorf("scans after reset = %d, want 0", reset.Scans)
	}
	if reset.LastScan != nil {
		t.Errorf("lastScan after reset = %v, want nil", reset.LastScan)
	}
}

func TestListOrderedByRecency(t *testing.T) {
	svc := newTestService(newFakeTableRepo())
	ctx := context.Background()

	first, _ := svc.Create(ctx, "Masa 1")
	second, _ := svc.Create(ctx, "Masa 2")
	third, _ := svc.Create(ctx, "Masa 3")

	list, err := svc.ListOrderedByRecency(ctx)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list len = %d, want 3", len(list))
	}
	if list[0].ID != third.ID || list[1].ID != second.ID || list[2].ID != first.ID {
		t.Errorf("order = [%d %d %d], want [%d %d %d]",
			list[0].ID, list[1].ID, list[2].ID, third.ID, second.ID, first.ID)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeTableRepo())
	ctx := context.Background()

	tbl, _ := svc.Create(ctx, "Masa 1")
	if err := svc.Delete(ctx, tbl.ID); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if err := svc.Delete(ctx, tbl.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}
