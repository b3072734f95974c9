package oauth

import "sync"

// MemoryUsers is an in process UserSource keeping users by token.
//
// Meant for demos and tests: real applications plug in their own
// UserSource backed by whatever persistence they already have.
type MemoryUsers struct {
	mu      sync.Mutex
	byToken map[Token]*User
}

var _ UserSource = (*MemoryUsers)(nil)

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byToken: map[Token]*User{}}
}

// FindOrNew returns the stored user owning the credential, or a fresh
// unsaved user carrying it. An empty credential yields an anonymous user.
func (m *MemoryUsers) FindOrNew(credential string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.byToken[Token(credential)]; ok && credential != "" {
		return user, nil
	}
	return &User{Token: Token(credential)}, nil
}

// Create stores and returns the user owning a freshly exchanged token.
func (m *MemoryUsers) Create(client Client, token Token) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.byToken[token]; ok {
		return user, nil
	}
	user := &User{Token: token}
	m.byToken[token] = user
	return user, nil
}
