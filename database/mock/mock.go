package mock

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shrinx/shrinx/database"
)

var _ database.Store = (*MockStore)(nil)

// MockStore is an in-memory implementation of database.Store for testing.
type MockStore struct {
	mu sync.RWMutex

	links      map[uint]*database.Link
	nextLinkID uint

	domains      map[uint]*database.Domain
	nextDomainID uint

	settings map[string]string

	users      map[uint]*database.User
	nextUserID uint

	// Error simulation
	CreateLinkError   error
	GetLinkError      error
	ListLinksError    error
	DeleteLinkError   error
	CreateDomainError error
	DeleteDomainError error
	ListDomainsError  error
	DomainExistsError error
	GetSettingError   error
	SetSettingError   error
	AllSettingsError  error
	GetUserError      error
	UpdateUserError   error
	ResetAdminError   error
}

// NewMockStore creates a new MockStore instance.
func NewMockStore() *MockStore {
	return &MockStore{
		links:        make(map[uint]*database.Link),
		nextLinkID:   1,
		domains:      make(map[uint]*database.Domain),
		nextDomainID: 1,
		settings:     make(map[string]string),
		users:        make(map[uint]*database.User),
		nextUserID:   1,
	}
}

func (m *MockStore) CreateLink(_ context.Context, path, domain, redirectURL string) (*database.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateLinkError != nil {
		return nil, m.CreateLinkError
	}
	for _, l := range m.links {
		if l.Path == path && l.Domain == domain {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	link := &database.Link{
		ID:          m.nextLinkID,
		Path:        path,
		Domain:      domain,
		RedirectURL: redirectURL,
	}
	m.links[link.ID] = link
	m.nextLinkID++
	return link, nil
}

func (m *MockStore) GetLink(_ context.Context, path, domain string) (*database.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetLinkError != nil {
		return nil, m.GetLinkError
	}
	for _, l := range m.links {
		if l.Path == path && l.Domain == domain {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockStore) ListLinks(_ context.Context) ([]database.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListLinksError != nil {
		return nil, m.ListLinksError
	}
	links := make([]database.Link, 0, len(m.links))
	for id := uint(1); id < m.nextLinkID; id++ {
		if l, ok := m.links[id]; ok {
			links = append(links, *l)
		}
	}
	return links, nil
}

func (m *MockStore) DeleteLink(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteLinkError != nil {
		return m.DeleteLinkError
	}
	delete(m.links, id)
	return nil
}

func (m *MockStore) CreateDomain(_ context.Context, name string) (*database.Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateDomainError != nil {
		return nil, m.CreateDomainError
	}
	for _, d := range m.domains {
		if d.Name == name {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	domain := &database.Domain{
		ID:        m.nextDomainID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.domains[domain.ID] = domain
	m.nextDomainID++
	return domain, nil
}

func (m *MockStore) DeleteDomain(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteDomainError != nil {
		return m.DeleteDomainError
	}
	delete(m.domains, id)
	return nil
}

func (m *MockStore) ListDomains(_ context.Context) ([]database.Domain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListDomainsError != nil {
		return nil, m.ListDomainsError
	}
	domains := make([]database.Domain, 0, len(m.domains))
	for id := uint(1); id < m.nextDomainID; id++ {
		if d, ok := m.domains[id]; ok {
			domains = append(domains, *d)
		}
	}
	return domains, nil
}

func (m *MockStore) DomainExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.DomainExistsError != nil {
		return false, m.DomainExistsError
	}
	for _, d := range m.domains {
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.settings[key], nil
}

func (m *MockStore) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	m.settings[key] = value
	return nil
}

func (m *MockStore) AllSettings(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.AllSettingsError != nil {
		return nil, m.AllSettingsError
	}
	settings := make(map[string]string, len(m.settings))
	for k, v := range m.settings {
		settings[k] = v
	}
	return settings, nil
}

func (m *MockStore) GetUserByUsername(_ context.Context, username string) (*database.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockStore) UpdateUserCredentials(_ context.Context, id uint, username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateUserError != nil {
		return m.UpdateUserError
	}
	user, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if username != "" {
		user.Username = username
	}
	if passwordHash != "" {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (m *MockStore) ResetAdminUser(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ResetAdminError != nil {
		return m.ResetAdminError
	}
	hash, err := database.HashPassword(database.DefaultAdminPassword)
	if err != nil {
		return err
	}
	for _, u := range m.users {
		u.Username = database.DefaultAdminUsername
		u.PasswordHash = hash
		return nil
	}
	m.users[m.nextUserID] = &database.User{
		ID:           m.nextUserID,
		Username:     database.DefaultAdminUsername,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	m.nextUserID++
	return nil
}

// AddUser inserts a user with the given credentials, hashing the password.
func (m *MockStore) AddUser(username, password string) (*database.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash, err := database.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &database.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	m.nextUserID++
	return user, nil
}
