package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"studyhall/internal/shared/config"
	"studyhall/pkg/apperrors"
)

// RegistryClient pushes seat occupancy status to the seat registry service.
type RegistryClient interface {
	SetSeatStatus(ctx context.Context, seatID uuid.UUID, status string) error
}

type httpRegistryClient struct {
	baseURL    string
	httpClient *http.Client
	jwtSecret  []byte
	issuer     string
}

// NewRegistryClient builds an HTTP client against the registry base URL.
// Calls authenticate with a short-lived service token signed with the shared
// secret.
func NewRegistryClient(registryCfg *config.RegistryConfig, jwtCfg *config.JWTConfig) RegistryClient {
	return &httpRegistryClient{
		baseURL: registryCfg.BaseURL,
		httpClient: &http.Client{
			Timeout: registryCfg.RequestTimeout,
		},
		jwtSecret: []byte(jwtCfg.Secret),
		issuer:    jwtCfg.Issuer,
	}
}

type setStatusPayload struct {
	Status        string `json:"status"`
	AdminOverride bool   `json:"admin_override"`
}

func (c *httpRegistryClient) SetSeatStatus(ctx context.Context, seatID uuid.UUID, status string) error {
	body, err := json.Marshal(setStatusPayload{Status: status})
	if err != nil {
		return apperrors.Internal("failed to encode registry payload", err)
	}

	url := fmt.Sprintf("%s/api/v1/seats/%s/status", c.baseURL, seatID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return apperrors.Internal("failed to build registry request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.serviceToken()
	if err != nil {
		return apperrors.Internal("failed to sign service token", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.RegistryUnreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return apperrors.RegistryUnreachable(
			fmt.Errorf("registry returned status %d", resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.Internal(
			fmt.Sprintf("registry rejected status write: %d", resp.StatusCode),
			fmt.Errorf("%s", detail))
	}
	return nil
}

func (c *httpRegistryClient) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": "booking-ledger",
		"role":    "SERVICE",
		"iss":     c.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.jwtSecret)
}
