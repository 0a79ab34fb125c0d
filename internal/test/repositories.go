package test

import (
	"context"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
)

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	ByEmail map[string]*model.Customer
	ByID    map[string]*model.Customer
	Err     error
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		ByEmail: make(map[string]*model.Customer),
		ByID:    make(map[string]*model.Customer),
	}
}

// Create registers customer unless already exists or stub has explicit error.
func (s *CustomerRepositoryStub) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[customer.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *customer
	if stored.ID == "" {
		stored.ID = "customer-" + strconv.Itoa(len(s.ByEmail)+1)
	}
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches customer by email or returns not found.
func (s *CustomerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if customer, ok := s.ByEmail[email]; ok {
		return customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches customer by identifier or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if customer, ok := s.ByID[id]; ok {
		return customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkVerified flips the verification flag for a stored customer.
func (s *CustomerRepositoryStub) MarkVerified(ctx context.Context, email string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	customer, ok := s.ByEmail[email]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	customer.IsVerified = true
	return customer, nil
}

// ManagerRepositoryStub stores staff accounts in-memory for tests.
type ManagerRepositoryStub struct {
	ByEmail map[string]*model.Manager
	Err     error
}

// NewManagerRepositoryStub constructs stub repository with initialized map.
func NewManagerRepositoryStub() *ManagerRepositoryStub {
	return &ManagerRepositoryStub{ByEmail: make(map[string]*model.Manager)}
}

// Create registers manager unless already exists.
func (s *ManagerRepositoryStub) Create(ctx context.Context, manager *model.Manager) (*model.Manager, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[manager.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *manager
	if stored.ID == "" {
		stored.ID = "manager-" + strconv.Itoa(len(s.ByEmail)+1)
	}
	s.ByEmail[stored.Email] = &stored
	return &stored, nil
}

// GetByEmail fetches manager by email or returns not found.
func (s *ManagerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Manager, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if manager, ok := s.ByEmail[email]; ok {
		return manager, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches manager by identifier or returns not found.
func (s *ManagerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, manager := range s.ByEmail {
		if manager.ID == id {
			return manager, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored managers ignoring pagination.
func (s *ManagerRepositoryStub) List(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	managers := make([]model.Manager, 0, len(s.ByEmail))
	for _, m := range s.ByEmail {
		managers = append(managers, *m)
	}
	return managers, len(managers), nil
}

// DeleteByEmail removes a stored manager or reports not found.
func (s *ManagerRepositoryStub) DeleteByEmail(ctx context.Context, email string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.ByEmail[email]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByEmail, email)
	return nil
}

// CarRepositoryStub allows tests to customize behaviour.
type CarRepositoryStub struct {
	CreateFn      func(context.Context, *model.Car) (*model.Car, error)
	GetByIDFn     func(context.Context, string) (*model.Car, error)
	ListFn        func(context.Context, model.CarFilter) ([]model.Car, int, error)
	UpdateFn      func(context.Context, string, repository.CarUpdate) (*model.Car, error)
	DeleteFn      func(context.Context, string) error
	AddPhotosFn   func(context.Context, string, []string) (*model.Car, error)
	RemovePhotoFn func(context.Context, string, string) (*model.Car, error)

	Cars []model.Car
}

// Create tracks invocations and returns configured responses.
func (s *CarRepositoryStub) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, car)
	}
	stored := *car
	if stored.ID == "" {
		stored.ID = "car-" + strconv.Itoa(len(s.Cars)+1)
	}
	s.Cars = append(s.Cars, stored)
	return &stored, nil
}

// GetByID returns matched car either via override or stored slice.
func (s *CarRepositoryStub) GetByID(ctx context.Context, id string) (*model.Car, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, c := range s.Cars {
		if c.ID == id {
			car := c
			return &car, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns cars from configured slice.
func (s *CarRepositoryStub) List(ctx context.Context, filter model.CarFilter) ([]model.Car, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Cars, len(s.Cars), nil
}

// Update applies override when provided.
func (s *CarRepositoryStub) Update(ctx context.Context, id string, update repository.CarUpdate) (*model.Car, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the stored car or reports not found.
func (s *CarRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	for i, c := range s.Cars {
		if c.ID == id {
			s.Cars = append(s.Cars[:i], s.Cars[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// AddPhotos appends photo URLs to the stored car.
func (s *CarRepositoryStub) AddPhotos(ctx context.Context, id string, urls []string) (*model.Car, error) {
	if s.AddPhotosFn != nil {
		return s.AddPhotosFn(ctx, id, urls)
	}
	for i := range s.Cars {
		if s.Cars[i].ID == id {
			s.Cars[i].Photos = append(s.Cars[i].Photos, urls...)
			car := s.Cars[i]
			return &car, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// RemovePhoto drops a photo URL from the stored car.
func (s *CarRepositoryStub) RemovePhoto(ctx context.Context, id string, url string) (*model.Car, error) {
	if s.RemovePhotoFn != nil {
		return s.RemovePhotoFn(ctx, id, url)
	}
	for i := range s.Cars {
		if s.Cars[i].ID == id {
			kept := s.Cars[i].Photos[:0]
			for _, p := range s.Cars[i].Photos {
				if p != url {
					kept = append(kept, p)
				}
			}
			s.Cars[i].Photos = kept
			car := s.Cars[i]
			return &car, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CategoryRepositoryStub lets tests control category data.
type CategoryRepositoryStub struct {
	CreateFn  func(context.Context, *model.Category) (*model.Category, error)
	GetByIDFn func(context.Context, string) (*model.Category, error)
	ListFn    func(context.Context, model.CategoryFilter) ([]model.Category, int, error)
	UpdateFn  func(context.Context, string, repository.CategoryUpdate) (*model.Category, error)
	DeleteFn  func(context.Context, string) error

	Categories []model.Category
}

// Create stores the category or delegates to the override.
func (s *CategoryRepositoryStub) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, category)
	}
	stored := *category
	if stored.ID == "" {
		stored.ID = "category-" + strconv.Itoa(len(s.Categories)+1)
	}
	s.Categories = append(s.Categories, stored)
	return &stored, nil
}

// GetByID returns the stored category or not found.
func (s *CategoryRepositoryStub) GetByID(ctx context.Context, id string) (*model.Category, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, c := range s.Categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns configured categories.
func (s *CategoryRepositoryStub) List(ctx context.Context, filter model.CategoryFilter) ([]model.Category, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Categories, len(s.Categories), nil
}

// Update applies override when provided.
func (s *CategoryRepositoryStub) Update(ctx context.Context, id string, update repository.CategoryUpdate) (*model.Category, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the stored category or reports not found.
func (s *CategoryRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	for i, c := range s.Categories {
		if c.ID == id {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// PurchaseRepositoryStub is an in-memory purchase ledger with the same
// conditional transition semantics as the real repository, safe for
// concurrent use so racing confirmation paths can be exercised.
type PurchaseRepositoryStub struct {
	mu        sync.Mutex
	purchases map[string]*model.Purchase

	Cars *CarRepositoryStub

	Completions int
	Failures    int
	Err         error
}

// NewPurchaseRepositoryStub constructs stub ledger with initialized map.
func NewPurchaseRepositoryStub() *PurchaseRepositoryStub {
	return &PurchaseRepositoryStub{purchases: make(map[string]*model.Purchase)}
}

// Create persists a new pending purchase.
func (s *PurchaseRepositoryStub) Create(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.purchases[purchase.Reference]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *purchase
	if stored.Status == "" {
		stored.Status = model.PaymentStatusPending
	}
	stored.CreatedAt = time.Now()
	s.purchases[stored.Reference] = &stored
	copied := stored
	return &copied, nil
}

// GetByReference fetches the stored purchase.
func (s *PurchaseRepositoryStub) GetByReference(ctx context.Context, reference string) (*model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	purchase, ok := s.purchases[reference]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *purchase
	return &copied, nil
}

// Complete performs the conditional pending->completed transition and flips
// the car when a car repository stub is attached.
func (s *PurchaseRepositoryStub) Complete(ctx context.Context, reference string) (*model.Purchase, bool, error) {
	purchase, transitioned, err := s.transition(reference, model.PaymentStatusCompleted)
	if err != nil || !transitioned {
		return purchase, transitioned, err
	}
	s.mu.Lock()
	s.Completions++
	if s.Cars != nil {
		for i := range s.Cars.Cars {
			if s.Cars.Cars[i].ID == purchase.CarID {
				s.Cars.Cars[i].IsAvailable = false
			}
		}
	}
	s.mu.Unlock()
	return purchase, true, nil
}

// Fail performs the conditional pending->failed transition.
func (s *PurchaseRepositoryStub) Fail(ctx context.Context, reference string) (*model.Purchase, bool, error) {
	purchase, transitioned, err := s.transition(reference, model.PaymentStatusFailed)
	if err != nil || !transitioned {
		return purchase, transitioned, err
	}
	s.mu.Lock()
	s.Failures++
	s.mu.Unlock()
	return purchase, true, nil
}

// SelectStalePending returns pending purchases older than the cutoff.
func (s *PurchaseRepositoryStub) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	cutoff := time.Now().Add(-olderThan)
	var stale []model.Purchase
	for _, p := range s.purchases {
		if p.Status == model.PaymentStatusPending && p.CreatedAt.Before(cutoff) {
			stale = append(stale, *p)
			if len(stale) == limit {
				break
			}
		}
	}
	return stale, nil
}

// Seed stores a purchase directly, bypassing Create side effects.
func (s *PurchaseRepositoryStub) Seed(purchase model.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases[purchase.Reference] = &purchase
}

func (s *PurchaseRepositoryStub) transition(reference string, status model.PaymentStatus) (*model.Purchase, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	purchase, ok := s.purchases[reference]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if purchase.Status.IsTerminal() {
		copied := *purchase
		return &copied, false, nil
	}
	purchase.Status = status
	purchase.UpdatedAt = time.Now()
	copied := *purchase
	return &copied, true, nil
}

// OTPRepositoryStub stores one-time codes in-memory.
type OTPRepositoryStub struct {
	Codes   map[string]string
	SaveErr error
	Err     error
}

// NewOTPRepositoryStub constructs stub store with initialized map.
func NewOTPRepositoryStub() *OTPRepositoryStub {
	return &OTPRepositoryStub{Codes: make(map[string]string)}
}

// Save records the code for the email.
func (s *OTPRepositoryStub) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Codes[email] = code
	return nil
}

// Consume redeems a matching code exactly once.
func (s *OTPRepositoryStub) Consume(ctx context.Context, email, code string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	stored, ok := s.Codes[email]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.Codes, email)
	return true, nil
}
