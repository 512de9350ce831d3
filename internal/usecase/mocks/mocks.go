package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/savexhq/savex/internal/domain"
	"github.com/savexhq/savex/internal/usecase"
)

// MockUserRepository is an in-memory mock implementation of UserRepository.
// Mutations performed through a transaction are serialized by the
// MockTransactionManager's lock, mirroring the row-lock behavior of the real
// repository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc              func(ctx context.Context, user *domain.User) error
	GetByEmailFunc          func(ctx context.Context, email string) (*domain.User, error)
	GetByEmailForUpdateFunc func(ctx context.Context, tx usecase.Transaction, email string) (*domain.User, error)
	UpdateBalanceFunc       func(ctx context.Context, tx usecase.Transaction, email string, balance decimal.Decimal, updatedAt time.Time) error
	AddToBalanceFunc        func(ctx context.Context, email string, delta decimal.Decimal, updatedAt time.Time) error
	SetBalanceFunc          func(ctx context.Context, email string, balance decimal.Decimal, updatedAt time.Time) error
	SetBudgetReminderFunc   func(ctx context.Context, email string, amount decimal.Decimal, updatedAt time.Time) error
	ExistsFunc              func(ctx context.Context, email string) (bool, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return domain.ErrUserExists
	}
	u := *user
	m.users[user.Email] = &u
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[email]; ok {
		u := *user
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmailForUpdate(ctx context.Context, tx usecase.Transaction, email string) (*domain.User, error) {
	if m.GetByEmailForUpdateFunc != nil {
		return m.GetByEmailForUpdateFunc(ctx, tx, email)
	}
	return m.GetByEmail(ctx, email)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, email string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, email, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Balance = balance
	user.UpdatedAt = updatedAt
	return nil
}

func (m *MockUserRepository) AddToBalance(ctx context.Context, email string, delta decimal.Decimal, updatedAt time.Time) error {
	if m.AddToBalanceFunc != nil {
		return m.AddToBalanceFunc(ctx, email, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Balance = user.Balance.Add(delta)
	user.UpdatedAt = updatedAt
	return nil
}

func (m *MockUserRepository) SetBalance(ctx context.Context, email string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.SetBalanceFunc != nil {
		return m.SetBalanceFunc(ctx, email, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Balance = balance
	user.UpdatedAt = updatedAt
	return nil
}

func (m *MockUserRepository) SetBudgetReminder(ctx context.Context, email string, amount decimal.Decimal, updatedAt time.Time) error {
	if m.SetBudgetReminderFunc != nil {
		return m.SetBudgetReminderFunc(ctx, email, amount, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.BudgetReminder = amount
	user.UpdatedAt = updatedAt
	return nil
}

func (m *MockUserRepository) Exists(ctx context.Context, email string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[email]
	return ok, nil
}

// MockTransactionRepository is an in-memory mock of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string][]*domain.Transaction

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByUserFunc   func(ctx context.Context, email string) ([]*domain.Transaction, error)
	DeleteByUserFunc func(ctx context.Context, email string) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		txns: make(map[string][]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *txn
	m.txns[txn.UserEmail] = append(m.txns[txn.UserEmail], &t)
	return nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, email string) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.txns[email]))
	copy(out, m.txns[email])
	return out, nil
}

func (m *MockTransactionRepository) DeleteByUser(ctx context.Context, email string) (int64, error) {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.txns[email]))
	delete(m.txns, email)
	return n, nil
}

// MockTransactionManager serializes all transactions behind one lock, which
// is a strictly stronger guarantee than the per-row lock the real store
// gives, so tests exercising per-user atomicity remain valid.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	return &MockTx{release: m.mu.Unlock}, nil
}

// MockTx is a no-op transaction handle that releases the manager's lock on
// Commit or Rollback, whichever comes first.
type MockTx struct {
	once    sync.Once
	release func()

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.release != nil {
		t.once.Do(t.release)
	}
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.release != nil {
		t.once.Do(t.release)
	}
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("txn-%04d", m.n)
}

// MockCache is an in-memory mock of Cache. TTLs are recorded but not
// enforced.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string]string

	GetCalls int
	SetCalls int

	GetFunc    func(ctx context.Context, key string) (string, bool, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
