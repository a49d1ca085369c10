package service

// In-memory store fakes shared by the service tests.

import (
	"context"
	"sync"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
)

type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  []model.User
}

func newMemUserStore() *memUserStore { return &memUserStore{nextID: 1} }

func (m *memUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID
	m.nextID++
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUserStore) FindByUserID(_ context.Context, userID string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStore) ExistsByPhoneNumber(_ context.Context, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserStore) Update(_ context.Context, userID, name, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].UserID == userID {
			m.users[i].Name = name
			m.users[i].PhoneNumber = phone
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *memUserStore) UpdatePassword(_ context.Context, userID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].UserID == userID {
			m.users[i].Password = hash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *memUserStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].UserID == userID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type memPaymentStore struct {
	mu      sync.Mutex
	nextID  uint64
	methods []model.PaymentMethod
}

func newMemPaymentStore() *memPaymentStore { return &memPaymentStore{nextID: 1} }

func (m *memPaymentStore) Create(_ context.Context, pm model.PaymentMethod) (model.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pm.ID = m.nextID
	m.nextID++
	m.methods = append(m.methods, pm)
	return pm, nil
}

func (m *memPaymentStore) FindByID(_ context.Context, id uint64) (model.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pm := range m.methods {
		if pm.ID == id {
			return pm, nil
		}
	}
	return model.PaymentMethod{}, repository.ErrPaymentMethodNotFound
}

func (m *memPaymentStore) FindByUser(_ context.Context, userID uint64) ([]model.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PaymentMethod
	for _, pm := range m.methods {
		if pm.UserID == userID {
			out = append(out, pm)
		}
	}
	return out, nil
}

func (m *memPaymentStore) FindDefaultByUser(_ context.Context, userID uint64) (model.PaymentMethod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pm := range m.methods {
		if pm.UserID == userID && pm.IsDefault {
			return pm, nil
		}
	}
	return model.PaymentMethod{}, repository.ErrPaymentMethodNotFound
}

func (m *memPaymentStore) ExistsByUser(_ context.Context, userID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pm := range m.methods {
		if pm.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPaymentStore) SetDefault(_ context.Context, userID, methodID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i := range m.methods {
		if m.methods[i].UserID == userID {
			m.methods[i].IsDefault = m.methods[i].ID == methodID
			if m.methods[i].ID == methodID {
				found = true
			}
		}
	}
	if !found {
		return repository.ErrPaymentMethodNotFound
	}
	return nil
}

func (m *memPaymentStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.methods {
		if m.methods[i].ID == id {
			m.methods = append(m.methods[:i], m.methods[i+1:]...)
			return nil
		}
	}
	return repository.ErrPaymentMethodNotFound
}

// recordingPublisher captures published events instead of dialing a broker.
type recordingPublisher struct {
	created []queue.UserCreatedEvent
	deleted []queue.UserDeletedEvent
}

func (r *recordingPublisher) PublishUserCreated(_ context.Context, e queue.UserCreatedEvent) error {
	r.created = append(r.created, e)
	return nil
}

func (r *recordingPublisher) PublishUserDeleted(_ context.Context, e queue.UserDeletedEvent) error {
	r.deleted = append(r.deleted, e)
	return nil
}
