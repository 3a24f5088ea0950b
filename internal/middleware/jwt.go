package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/common"

	echojwt "github.com/labstack/echo-jwt/v4"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// VendorClaims are the JWT claims carried by vendor API tokens.
type VendorClaims struct {
	VendorID string `json:"vendor_id"`
	jwt.RegisteredClaims
}

// VendorJWTConfig builds the echo-jwt configuration guarding catalog
// mutation routes. On success the vendor identity lands in the request
// context under common.VendorIDKey.
func VendorJWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(VendorClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*VendorClaims)
			if !ok {
				return
			}
			vendorID, err := uuid.Parse(claims.VendorID)
			if err != nil {
				return
			}

			ctx := context.WithValue(c.Request().Context(), common.VendorIDKey, vendorID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// IssueVendorToken mints a signed token for a vendor. Used by the
// token endpoint and by tests.
func IssueVendorToken(jwtSecret string, vendorID uuid.UUID, ttl time.Duration) (string, error) {
	claims := &VendorClaims{
		VendorID: vendorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   vendorID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
