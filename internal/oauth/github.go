package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

type githubUser struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

type GitHubProvider struct {
	oauth *oauth2.Config
}

func NewGitHubProvider(cfg config.OAuthConfig) *GitHubProvider {
	return &GitHubProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

func (p *GitHubProvider) Name() string { return "github" }

func (p *GitHubProvider) GetConsentURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *GitHubProvider) ExchangeCode(ctx context.Context, code string) (*UserInfo, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github code exchange: %w", err)
	}
	client := p.oauth.Client(ctx, token)

	var u githubUser
	if err := getJSON(client, "https://api.github.com/user", &u); err != nil {
		return nil, err
	}

	// Users can hide the email on the profile; fall back to the emails API.
	email := u.Email
	if email == "" {
		if email, err = primaryEmail(client); err != nil {
			return nil, err
		}
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}

	return &UserInfo{
		ID:        fmt.Sprintf("%d", u.ID),
		Email:     email,
		Name:      name,
		AvatarURL: u.AvatarURL,
		Provider:  "github",
	}, nil
}

// primaryEmail picks the best address from the emails endpoint: primary and
// verified first, then any verified, then whatever is listed.
func primaryEmail(client *http.Client) (string, error) {
	var emails []githubEmail
	if err := getJSON(client, "https://api.github.com/user/emails", &emails); err != nil {
		return "", err
	}
	if len(emails) == 0 {
		return "", errors.New("github account has no email")
	}

	verified := ""
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
		if e.Verified && verified == "" {
			verified = e.Email
		}
	}
	if verified != "" {
		return verified, nil
	}
	return emails[0].Email, nil
}
