package auth

import (
	"net/http"
	"time"

	"workforce/backend/foundation/web"
	authpkg "workforce/backend/internal/auth"
	"workforce/backend/internal/commands"
	"workforce/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type Controller struct {
	user           User
	sessions       SessionStore
	privateKeyPath string
}

func NewController(user User, sessions SessionStore, privateKeyPath string) *Controller {
	return &Controller{user: user, sessions: sessions, privateKeyPath: privateKeyPath}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	err := c.BindFunc(&data, "EmployeeID", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByEmployeeID(c.Ctx, data.EmployeeID)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || detail.Role == nil {
		return c.RespondError(&web.Error{
			Err:    errors.New("employee not found"),
			Status: http.StatusNotFound,
		})
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect employee id or password"), http.StatusBadRequest))
	}

	accessToken, refreshToken, err := commands.GenToken(commands.TokenClaims{
		ID:   detail.ID,
		Role: *detail.Role,
	}, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(err)
	}

	if err = uc.sessions.Save(c.Ctx, detail.ID, refreshToken, refreshTokenTTL); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	err := c.BindFunc(&data, "AccessToken", "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	_, refreshTokenClaims, err := commands.VerifyTokens(data.AccessToken, data.RefreshToken, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	active, err := uc.sessions.IsActive(c.Ctx, refreshTokenClaims.UserId, data.RefreshToken)
	if err != nil {
		return c.RespondError(err)
	}
	if !active {
		return c.RespondError(web.NewRequestError(errors.New("session has been revoked"), http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := commands.GenToken(commands.TokenClaims{
		ID:   refreshTokenClaims.UserId,
		Role: refreshTokenClaims.Role,
	}, uc.privateKeyPath)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	if err = uc.sessions.Save(c.Ctx, refreshTokenClaims.UserId, refreshToken, refreshTokenTTL); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) SignOut(c *web.Context) error {
	claims, ok := c.Ctx.Value(authpkg.Key).(authpkg.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	if err := uc.sessions.Revoke(c.Ctx, claims.UserId); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
