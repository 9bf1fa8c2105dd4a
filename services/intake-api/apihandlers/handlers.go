package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willem4130/thecareranchintake/pkg/intake/session"
	"github.com/willem4130/thecareranchintake/pkg/magiclink"
	"github.com/willem4130/thecareranchintake/pkg/utils"

	userDB "github.com/willem4130/thecareranchintake/pkg/db/intake-user"
	jwthandling "github.com/willem4130/thecareranchintake/pkg/jwt-handling"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	userDBConn         *userDB.IntakeUserDBService
	magicLinkStore     *magiclink.Store
	sessionManager     *session.Manager
	allowedInstanceIDs []string
	signInURLBase      string
	filestorePath      string
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	userDBConn *userDB.IntakeUserDBService,
	magicLinkStore *magiclink.Store,
	sessionManager *session.Manager,
	allowedInstanceIDs []string,
	signInURLBase string,
	filestorePath string,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		userDBConn:         userDBConn,
		magicLinkStore:     magicLinkStore,
		sessionManager:     sessionManager,
		allowedInstanceIDs: allowedInstanceIDs,
		signInURLBase:      signInURLBase,
		filestorePath:      filestorePath,
	}
}

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	return utils.ContainsString(h.allowedInstanceIDs, instanceID)
}

func validatedClaims(c *gin.Context) *jwthandling.IntakeUserClaims {
	return c.MustGet("validatedToken").(*jwthandling.IntakeUserClaims)
}
