package security

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/culinamind/backend/internal/infrastructure/config"
	"github.com/culinamind/backend/internal/ports/outbound"
	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

const tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint and checks the audience claim.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGoogleVerifier creates a tokeninfo-based verifier.
func NewGoogleVerifier(cfg config.AuthConfig, logger *zap.Logger) outbound.GoogleVerifier {
	return &GoogleVerifier{
		clientID:   cfg.GoogleClientID,
		endpoint:   tokeninfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type tokeninfoResponse struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	Audience   string `json:"aud"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Verify checks an ID token and returns the verified identity.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*outbound.GoogleIdentity, error) {
	endpoint := v.endpoint + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("google tokeninfo", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("google tokeninfo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUnauthorizedError("Invalid Google token")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("google tokeninfo", err)
	}

	var info tokeninfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, apperrors.NewExternalServiceError("google tokeninfo", err)
	}

	if info.Email == "" {
		return nil, apperrors.NewUnauthorizedError("Google token missing email claim")
	}
	if v.clientID != "" && info.Audience != v.clientID {
		v.logger.Warn("google token audience mismatch",
			zap.String("aud", info.Audience))
		return nil, apperrors.NewUnauthorizedError("Token audience does not match client")
	}

	return &outbound.GoogleIdentity{
		Subject:   info.Subject,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	}, nil
}
