package usecase

import (
	"errors"
	"time"

	"app/internal/config"
	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// access/refreshのペア
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// JWTを発行する約束
type TokenIssuer interface {
	//短命。identity + 表示用のemail/usernameを埋め込む。副作用なし
	IssueAccessToken(user *model.User, now time.Time) (string, error)
	//長命。identity（sub）のみ埋め込む。副作用なし
	IssueRefreshToken(userID string, now time.Time) (string, error)
	//refresh tokenを検証してsubを取り出す。署名不正・期限切れはエラー
	ParseRefreshToken(token string) (userID string, err error)
}

// JWTTokenIssuerはHS256で署名する。access/refreshで別シークレット・別TTL。
type JWTTokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// DI
// シークレットやTTLが設定されていなければここで失敗させる。
func NewJWTTokenIssuer(cfg config.Config) (*JWTTokenIssuer, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("token secret is not configured")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("token ttl is not configured")
	}

	return &JWTTokenIssuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

func (i *JWTTokenIssuer) IssueAccessToken(user *model.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(i.accessTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.accessSecret)
}

func (i *JWTTokenIssuer) IssueRefreshToken(userID string, now time.Time) (string, error) {
	//jtiで毎回必ず別のtokenになる（同一秒内のローテーション対策）
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(i.refreshTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.refreshSecret)
}

// 署名・期限を検証してsubを返す
func (i *JWTTokenIssuer) ParseRefreshToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.refreshSecret, nil
	})
	if err != nil || parsed == nil || !parsed.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrUnauthorized
	}

	return sub, nil
}
