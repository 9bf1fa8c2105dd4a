package apihandlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/willem4130/thecareranchintake/pkg/apihelpers/middlewares"
	jwthandling "github.com/willem4130/thecareranchintake/pkg/jwt-handling"
	"github.com/willem4130/thecareranchintake/pkg/magiclink"
	"github.com/willem4130/thecareranchintake/pkg/messaging"
	"github.com/willem4130/thecareranchintake/pkg/utils"
)

func (h *HttpEndpoints) AddIntakeAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/magic-link", mw.RequirePayload(), h.requestMagicLink)
		authGroup.POST("/magic-link/verify", mw.RequirePayload(), h.verifyMagicLink)

		authGroup.GET("/token/validate", mw.GetAndValidateIntakeUserJWT(h.tokenSignKey), h.validateToken)
		authGroup.POST("/logout", mw.GetAndValidateIntakeUserJWT(h.tokenSignKey), h.logout)
	}
}

type MagicLinkReq struct {
	Email      string `json:"email"`
	InstanceID string `json:"instanceId"`
}

type VerifyMagicLinkReq struct {
	Token      string `json:"token"`
	InstanceID string `json:"instanceId"`
}

// generateSessionID creates a unique session ID using crypto/rand
func generateSessionID() (string, error) {
	bytes := make([]byte, 16) // 32 character hex string
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// randomWait blocks between min and max seconds to mask timing differences
// between existing and unknown accounts.
func randomWait(minSec int, maxSec int) {
	span := big.NewInt(int64(maxSec - minSec))
	offset, err := rand.Int(rand.Reader, span)
	if err != nil {
		time.Sleep(time.Duration(minSec) * time.Second)
		return
	}
	time.Sleep(time.Duration(int64(minSec)+offset.Int64()) * time.Second)
}

func (h *HttpEndpoints) requestMagicLink(c *gin.Context) {
	var req MagicLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Error("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid instance id"})
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	if !utils.CheckEmailFormat(req.Email) {
		slog.Error("invalid email format", slog.String("email", req.Email))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		return
	}

	token, err := h.magicLinkStore.IssueToken(c.Request.Context(), req.InstanceID, req.Email)
	if err != nil {
		if errors.Is(err, magiclink.ErrRateLimited) {
			slog.Warn("magic link rate limit reached", slog.String("email", utils.BlurEmailAddress(req.Email)), slog.String("instanceID", req.InstanceID))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many sign-in requests, try again later"})
			return
		}
		slog.Error("failed to issue magic link token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare sign-in link"})
		return
	}

	signInURL := h.signInURLBase + "?" + url.Values{
		"token":      []string{token},
		"instanceId": []string{req.InstanceID},
	}.Encode()

	go func() {
		err := messaging.SendSignInEmail(req.Email, messaging.SignInEmailPayload{
			SignInURL:        signInURL,
			ExpiresInMinutes: int(h.magicLinkStore.TokenTTL().Minutes()),
		})
		if err != nil {
			slog.Error("failed to send sign-in email", slog.String("email", utils.BlurEmailAddress(req.Email)), slog.String("error", err.Error()))
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "sign-in link sent if the address is valid"})
}

func (h *HttpEndpoints) verifyMagicLink(c *gin.Context) {
	var req VerifyMagicLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Token == "" || req.InstanceID == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	// Tokens are URL safe by construction, anything else never hits the store.
	if !utils.IsURLSafe(req.Token) {
		slog.Warn("sign-in attempt with malformed token", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired sign-in link"})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Error("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid instance id"})
		return
	}

	email, err := h.magicLinkStore.ConsumeToken(c.Request.Context(), req.InstanceID, req.Token)
	if err != nil {
		if errors.Is(err, magiclink.ErrTokenNotFound) {
			slog.Warn("sign-in attempt with unknown or expired token", slog.String("instanceID", req.InstanceID))
			randomWait(2, 5)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired sign-in link"})
			return
		}
		slog.Error("failed to consume magic link token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify sign-in link"})
		return
	}

	user, err := h.userDBConn.ProvisionUserByEmail(req.InstanceID, email)
	if err != nil {
		slog.Error("failed to provision user", slog.String("email", utils.BlurEmailAddress(email)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	sessionID, err := generateSessionID()
	if err != nil {
		slog.Error("failed to generate session id", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	jwtToken, err := jwthandling.GenerateNewIntakeUserToken(
		h.tokenExpiresIn,
		user.ID.Hex(),
		req.InstanceID,
		user.Email,
		map[string]string{
			"role": user.Role,
		},
		h.tokenSignKey,
		sessionID,
	)
	if err != nil {
		slog.Error("failed to generate JWT", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	slog.Info("user signed in", slog.String("userID", user.ID.Hex()), slog.String("instanceID", req.InstanceID))

	c.JSON(http.StatusOK, gin.H{
		"token":     jwtToken,
		"expiresIn": h.tokenExpiresIn.Seconds(),
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *HttpEndpoints) validateToken(c *gin.Context) {
	token := validatedClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"tokenInfos": gin.H{
			"subject":    token.Subject,
			"email":      token.Email,
			"instanceId": token.InstanceID,
			"payload":    token.Payload,
		},
	})
}

// logout flushes and closes any open editing sessions for the user, there is
// no server side token state to revoke.
func (h *HttpEndpoints) logout(c *gin.Context) {
	token := validatedClaims(c)
	h.sessionManager.CloseUserSessions(c.Request.Context(), token.Subject)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
