package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/cache"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/resilience"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

const maxIntrospectBody = 1 << 20

var errAnubisTransient = errors.New("anubis transient failure")

type CircuitBreakerConfig = resilience.CircuitBreakerConfig

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	CacheTTL       time.Duration
	CircuitBreaker CircuitBreakerConfig
}

// Client resolves bearer tokens into principals through the Anubis
// introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	principals    *cache.Store[user.Principal]
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker)
		logger.Debug("anubis circuit breaker enabled", cfg.CircuitBreaker.LogFields()...)
		breaker.OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("anubis circuit breaker state changed", "from", string(from), "to", string(to))
		})
	}

	var principals *cache.Store[user.Principal]
	if cfg.CacheTTL > 0 {
		principals = cache.NewStore[user.Principal](cfg.CacheTTL)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		breaker:       breaker,
		principals:    principals,
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if c.principals == nil {
		return c.guardedIntrospect(ctx, token)
	}
	return c.principals.GetOrLoad(ctx, hashToken(token), func(ctx context.Context) (user.Principal, error) {
		return c.guardedIntrospect(ctx, token)
	})
}

func (c *Client) guardedIntrospect(ctx context.Context, token string) (user.Principal, error) {
	var principal user.Principal
	call := func() error {
		var err error
		principal, err = c.introspect(ctx, token)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call, isCircuitFailure)
	} else {
		err = call()
	}

	switch {
	case err == nil:
		return principal, nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		return user.Principal{}, fmt.Errorf("%w: anubis circuit open", usecase.ErrDependencyUnavailable)
	case isCircuitFailure(err):
		c.logger.WarnContext(ctx, "anubis introspection unavailable", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return user.Principal{}, err
	}
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, errors.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, errors.Mark(errors.Wrap(err, "request introspection to anubis"), errAnubisTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectBody))
	if err != nil {
		return user.Principal{}, errors.Mark(errors.Wrap(err, "read introspect response"), errAnubisTransient)
	}

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return user.Principal{}, errors.Mark(errors.Newf("anubis introspection failed with status %d", resp.StatusCode), errAnubisTransient)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection status %d", usecase.ErrUnauthorized, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, errors.Wrap(err, "unmarshal introspect response")
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, errors.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Role:   decoded.role(),
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

// role collapses the token's roles into the single role the league cares about.
func (r introspectResponse) role() string {
	for _, candidate := range r.Roles {
		if strings.EqualFold(strings.TrimSpace(candidate), user.RoleAdmin) {
			return user.RoleAdmin
		}
	}
	if len(r.Roles) > 0 {
		return strings.TrimSpace(r.Roles[0])
	}
	return ""
}
