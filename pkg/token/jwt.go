// Package token 负责操作员登录令牌（JWT）的签发与校验。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType 区分访问令牌和刷新令牌，刷新令牌不能用于访问 API。
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const issuer = "hrm-records"

var ErrWrongTokenType = errors.New("unexpected token type")

// JWTManager 负责生成和验证 JWT
type JWTManager struct {
	secretKey            []byte
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

// CustomClaims 携带操作员身份。RegisteredClaims.ID（jti）用于注销时加入黑名单。
type CustomClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Remaining 返回距离过期的剩余时间，已过期返回 0。
func (c *CustomClaims) Remaining(now time.Time) time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

func NewJWTManager(secretKey string, accessTokenDuration, refreshTokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:            []byte(secretKey),
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// GenerateToken 签发一对访问令牌和刷新令牌，两者的 jti 不同。
func (manager *JWTManager) GenerateToken(userID uint, username, role string) (string, string, error) {
	now := time.Now()
	access, err := manager.sign(userID, username, role, TokenTypeAccess, now, manager.accessTokenDuration)
	if err != nil {
		return "", "", err
	}
	refresh, err := manager.sign(userID, username, role, TokenTypeRefresh, now, manager.refreshTokenDuration)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (manager *JWTManager) sign(userID uint, username, role, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(manager.secretKey)
}

// VerifyToken 校验签名、有效期和颁发者，只接受 HS256。
func (manager *JWTManager) VerifyToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return manager.secretKey, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	return token.Claims.(*CustomClaims), nil
}

// VerifyAccessToken 在 VerifyToken 的基础上要求令牌类型为 access。
func (manager *JWTManager) VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	claims, err := manager.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
