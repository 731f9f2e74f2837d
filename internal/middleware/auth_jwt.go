package middleware

import (
	"errors"
	"net/http"
	"strings"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"  // string (uuid)
	CtxEmailKey    = "email"    // string
	CtxUsernameKey = "username" // string

	//session artifactのcookie名
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// access token検証ミドルウェア。BearerヘッダかaccessToken cookieを受ける。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := extractAccessToken(c)
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, err := parseAccessToken(rawToken, cfg.AccessTokenSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			applyClaims(c, claims)
			return next(c)
		}
	}
}

// tokenがあれば検証してviewerを入れる。なければ匿名のまま通す。
// （チャンネルプロフィールのisSubscribed用）
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := extractAccessToken(c)
			if rawToken == "" {
				return next(c)
			}

			claims, err := parseAccessToken(rawToken, cfg.AccessTokenSecret)
			if err != nil {
				//不正tokenは匿名扱い
				return next(c)
			}

			applyClaims(c, claims)
			return next(c)
		}
	}
}

// AuthorizationヘッダのBearer、なければaccessToken cookie
func extractAccessToken(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

type accessClaims struct {
	userID   string
	email    string
	username string
}

// JWTをパースして検証する
func parseAccessToken(rawToken string, secret string) (*accessClaims, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid sub")
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return &accessClaims{
		userID:   sub,
		email:    email,
		username: username,
	}, nil
}

// contextへ保存
func applyClaims(c echo.Context, claims *accessClaims) {
	c.Set(CtxUserIDKey, claims.userID)
	c.Set(CtxEmailKey, claims.email)
	c.Set(CtxUsernameKey, claims.username)
}

// handlerからviewerのIDを取り出す。未設定（匿名）は空文字
func UserID(c echo.Context) string {
	v, _ := c.Get(CtxUserIDKey).(string)
	return v
}
