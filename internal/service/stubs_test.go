package service_test

import (
	"context"
	"sort"
	"strings"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
	"jandervidros/internal/repository"
)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
	failWith error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) sorted(keep func(*model.Product) bool) []model.Product {
	out := []model.Product{}
	for _, p := range r.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.sorted(func(*model.Product) bool { return true }), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperror.NotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return apperror.NotFound("product", p.ID)
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.products[id]; !ok {
		return apperror.NotFound("product", id)
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, category string) ([]model.Product, error) {
	return r.sorted(func(p *model.Product) bool { return p.Category == category }), nil
}

func (r *stubProductRepo) Search(_ context.Context, term string) ([]model.Product, error) {
	term = strings.ToLower(term)
	return r.sorted(func(p *model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term)
	}), nil
}

func (r *stubProductRepo) LowStock(_ context.Context) ([]model.Product, error) {
	out := r.sorted(func(p *model.Product) bool { return p.IsLowStock() })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory TransactionRepository stub ─────────────────────────────────────

type stubTransactionRepo struct {
	transactions map[uint]*model.Transaction
	nextID       uint
	failWith     error
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[uint]*model.Transaction)}
}

func (r *stubTransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]model.Transaction, error) {
	out := []model.Transaction{}
	for _, t := range r.transactions {
		if f.Type == "" || t.Type == f.Type {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uint) (*model.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, apperror.NotFound("transaction", id)
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransactionRepo) Create(_ context.Context, t *model.Transaction) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.nextID++
	t.ID = r.nextID
	for i := range t.Items {
		t.Items[i].ID = uint(i + 1)
		t.Items[i].TransactionID = t.ID
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.transactions[id]; !ok {
		return apperror.NotFound("transaction", id)
	}
	delete(r.transactions, id)
	return nil
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// ── In-memory ServiceOrderRepository stub ────────────────────────────────────

type stubServiceOrderRepo struct {
	orders map[uint]*model.ServiceOrder
	nextID uint
}

func newStubServiceOrderRepo() *stubServiceOrderRepo {
	return &stubServiceOrderRepo{orders: make(map[uint]*model.ServiceOrder)}
}

func (r *stubServiceOrderRepo) List(_ context.Context, status string) ([]model.ServiceOrder, error) {
	out := []model.ServiceOrder{}
	for _, s := range r.orders {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubServiceOrderRepo) FindByID(_ context.Context, id uint) (*model.ServiceOrder, error) {
	s, ok := r.orders[id]
	if !ok {
		return nil, apperror.NotFound("service", id)
	}
	cp := *s
	return &cp, nil
}

func (r *stubServiceOrderRepo) Create(_ context.Context, s *model.ServiceOrder) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.orders[s.ID] = &cp
	return nil
}

func (r *stubServiceOrderRepo) Update(_ context.Context, s *model.ServiceOrder) error {
	if _, ok := r.orders[s.ID]; !ok {
		return apperror.NotFound("service", s.ID)
	}
	cp := *s
	r.orders[s.ID] = &cp
	return nil
}

func (r *stubServiceOrderRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	s, ok := r.orders[id]
	if !ok {
		return apperror.NotFound("service", id)
	}
	s.Status = status
	return nil
}

func (r *stubServiceOrderRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.orders[id]; !ok {
		return apperror.NotFound("service", id)
	}
	delete(r.orders, id)
	return nil
}

var _ repository.ServiceOrderRepository = (*stubServiceOrderRepo)(nil)

// ── In-memory AppointmentRepository stub ─────────────────────────────────────

type stubAppointmentRepo struct {
	items  []model.Appointment
	nextID uint
}

func (r *stubAppointmentRepo) List(_ context.Context) ([]model.Appointment, error) {
	out := append([]model.Appointment(nil), r.items...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id uint) (*model.Appointment, error) {
	for _, a := range r.items {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("appointment", id)
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	r.nextID++
	a.ID = r.nextID
	r.items = append(r.items, *a)
	return nil
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id uint) error {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("appointment", id)
}

var _ repository.AppointmentRepository = (*stubAppointmentRepo)(nil)

// ── In-memory StatisticsRepository stub ──────────────────────────────────────

// stubStatisticsRepo computes its figures from the other stubs so that tests
// can check statistics are never stale.
type stubStatisticsRepo struct {
	products     *stubProductRepo
	services     *stubServiceOrderRepo
	appointments *stubAppointmentRepo
}

func (r *stubStatisticsRepo) Inventory(_ context.Context) (repository.InventoryStats, error) {
	var st repository.InventoryStats
	for _, p := range r.products.products {
		st.TotalProducts++
		st.TotalInventoryValue = st.TotalInventoryValue.Add(p.InventoryValue())
		if p.IsLowStock() {
			st.LowStockCount++
		}
	}
	return st, nil
}

func (r *stubStatisticsRepo) ServiceStatusCounts(_ context.Context) ([]repository.StatusCount, error) {
	counts := map[string]int64{}
	for _, s := range r.services.orders {
		counts[s.Status]++
	}
	out := []repository.StatusCount{}
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (r *stubStatisticsRepo) CountAppointments(_ context.Context) (int64, error) {
	return int64(len(r.appointments.items)), nil
}

var _ repository.StatisticsRepository = (*stubStatisticsRepo)(nil)

// ── In-memory CredentialRepository stub ──────────────────────────────────────

type stubCredentialRepo struct {
	cred *model.Credential
}

func (r *stubCredentialRepo) Get(_ context.Context) (*model.Credential, error) {
	if r.cred == nil {
		return nil, apperror.NotFound("credential", model.CredentialID)
	}
	cp := *r.cred
	return &cp, nil
}

func (r *stubCredentialRepo) Save(_ context.Context, username, hash string) error {
	r.cred = &model.Credential{ID: model.CredentialID, Username: username, PasswordHash: hash}
	return nil
}

func (r *stubCredentialRepo) EnsureDefault(ctx context.Context, username, hash string) (bool, error) {
	if r.cred != nil {
		return false, nil
	}
	return true, r.Save(ctx, username, hash)
}

var _ repository.CredentialRepository = (*stubCredentialRepo)(nil)

// ── ReceiptQueue stub ────────────────────────────────────────────────────────

type stubQueue struct {
	enqueued []uint
	failWith error
}

func (q *stubQueue) EnqueueReceipt(_ context.Context, id uint) error {
	if q.failWith != nil {
		return q.failWith
	}
	q.enqueued = append(q.enqueued, id)
	return nil
}
