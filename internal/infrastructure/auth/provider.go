// Package auth implements the external authentication provider contract:
// email/password identities persisted through the identity repository, a
// Google federated flow, and an identity-change stream consumed by the
// session manager.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

const minPasswordLen = 6

// Provider implements ports.AuthProvider.
type Provider struct {
	identities ports.IdentityRepository
	federated  *GoogleFederated
	log        zerolog.Logger

	mu      sync.Mutex
	current *domain.Identity
	subs    map[int]func(*domain.Identity)
	nextSub int
}

func NewProvider(identities ports.IdentityRepository, federated *GoogleFederated, log zerolog.Logger) *Provider {
	return &Provider{
		identities: identities,
		federated:  federated,
		log:        log,
		subs:       make(map[int]func(*domain.Identity)),
	}
}

// CreateIdentity registers a new email/password identity and signs it in.
func (p *Provider) CreateIdentity(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || len(password) < minPasswordLen {
		return nil, domain.ErrCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	identity := &domain.Identity{Email: email, CreatedAt: now, UpdatedAt: now}

	created, err := p.identities.Create(ctx, identity, string(hash))
	if err != nil {
		return nil, err
	}

	p.publish(created)
	return created, nil
}

// Authenticate signs in an existing email/password identity. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.ErrCredential
	}

	identity, hash, err := p.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrCredential
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, domain.ErrCredential
	}

	p.publish(identity)
	return identity, nil
}

// FederatedURL returns the Google consent URL; state round-trips through
// the redirect.
func (p *Provider) FederatedURL(state string) string {
	if p.federated == nil {
		return ""
	}
	return p.federated.AuthCodeURL(state)
}

// AuthenticateFederated exchanges the callback code for an identity.
func (p *Provider) AuthenticateFederated(ctx context.Context, code string) (*domain.Identity, error) {
	if p.federated == nil {
		return nil, domain.ErrFederatedAuth
	}

	profile, err := p.federated.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	identity, err := p.identities.Upsert(ctx, &domain.Identity{
		ID:          profile.Subject,
		Email:       profile.Email,
		DisplayName: profile.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFederatedAuth, err)
	}

	p.publish(identity)
	return identity, nil
}

// Subscribe registers an identity-change callback. The callback fires with
// the current identity immediately, then again on every sign-in and
// sign-out, until the returned handle is invoked.
func (p *Provider) Subscribe(onChange func(*domain.Identity)) ports.Unsubscribe {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = onChange
	current := p.current
	p.mu.Unlock()

	onChange(current)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// SignOut clears the active identity; subscribers observe nil.
func (p *Provider) SignOut(_ context.Context) error {
	p.publish(nil)
	return nil
}

func (p *Provider) publish(identity *domain.Identity) {
	p.mu.Lock()
	p.current = identity
	subs := make([]func(*domain.Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(identity)
	}
}
