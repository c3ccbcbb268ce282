package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
	"github.com/gustavopprado/ecommerce-fgv/pkg/common"
)

const tokenTTL = 8 * time.Hour

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// The login route is public; everything else under /api requires the token
// it issues.
func registerAuthRoutes() {
	webserver.PubPOST("/admin/login", loginAdmin)
}

func loginAdmin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	var operator domain.SysOpr
	err := GetDB(c).Where("username = ? and status = ?", username, common.ENABLED).First(&operator).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}
	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if hashed != operator.Password {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}

	now := time.Now()
	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Update("last_login", now)
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   operator.Username,
		OprIp:     c.RealIP(),
		OptAction: "login",
		OptDesc:   "admin login",
		OptTime:   now,
	})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": operator.Username,
		"level":    operator.Level,
		"exp":      now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(GetApp(c).Config().Web.Secret))
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"token": signed})
}
