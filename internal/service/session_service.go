package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gstbook/internal/config"
	"gstbook/internal/domain"
)

const shopDomainSuffix = ".myshopify.com"

// SessionClaims are the claims of a Shopify App Bridge session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
	Sid  string `json:"sid,omitempty"`
}

// Shop returns the shop domain named by the dest claim.
func (c *SessionClaims) Shop() (string, error) {
	return shopFromURL(c.Dest)
}

// SessionService verifies embedded-app session tokens.
type SessionService interface {
	// ValidateToken verifies the signature, lifetime and audience of a session
	// token and returns its claims together with the shop it was issued for.
	ValidateToken(tokenString string) (*SessionClaims, string, error)
}

type sessionService struct {
	cfg config.ShopifyConfig
}

// NewSessionService creates a SessionService that checks tokens signed with
// the app's API secret.
func NewSessionService(cfg config.ShopifyConfig) SessionService {
	return &sessionService{cfg: cfg}
}

func (s *sessionService) ValidateToken(tokenString string) (*SessionClaims, string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if s.cfg.APIKey != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.APIKey))
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.APISecret), nil
	}, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid {
		return nil, "", domain.ErrUnauthorized
	}

	shop, err := claims.Shop()
	if err != nil {
		return nil, "", err
	}
	// iss is the shop's admin URL; it must name the same shop as dest.
	issuerShop, err := shopFromURL(claims.Issuer)
	if err != nil || issuerShop != shop {
		return nil, "", domain.ErrUnauthorized
	}
	return claims, shop, nil
}

func shopFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return "", domain.ErrUnauthorized
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, shopDomainSuffix) || len(host) == len(shopDomainSuffix) {
		return "", domain.ErrUnauthorized
	}
	return host, nil
}
