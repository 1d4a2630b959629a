package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleFederated drives the OAuth2 authorization-code flow against Google.
type GoogleFederated struct {
	cfg *oauth2.Config
}

func NewGoogleFederated(clientID, clientSecret, redirectURL string) *GoogleFederated {
	return &GoogleFederated{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent URL the client is redirected to.
func (g *GoogleFederated) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Profile is the subset of the userinfo claims this system consumes.
type Profile struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Exchange trades the callback code for a token and fetches the profile.
// Every failure mode (denied consent, expired code, network) surfaces as
// domain.ErrFederatedAuth.
func (g *GoogleFederated) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", domain.ErrFederatedAuth, err)
	}

	resp, err := g.cfg.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo: %v", domain.ErrFederatedAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo status %d", domain.ErrFederatedAuth, resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decode userinfo: %v", domain.ErrFederatedAuth, err)
	}
	if profile.Subject == "" {
		return nil, fmt.Errorf("%w: userinfo missing subject", domain.ErrFederatedAuth)
	}
	return &profile, nil
}
