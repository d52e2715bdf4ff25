package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/smashhub/smashhub-server/models"
)

const (
	jwtClaimUserID = "user_id"
	jwtClaimClubID = "club_id"
	jwtClaimRole   = "role"
)

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("user claims not found in context or invalid type")
	}
	return claims, nil
}

func stringClaim(ctx context.Context, name string) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	value, ok := claims[name]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", name)
	}
	str, ok := value.(string)
	if !ok || str == "" {
		return "", fmt.Errorf("invalid '%s' claim in token", name)
	}
	return str, nil
}

func GetUserIDFromContext(ctx context.Context) (string, error) {
	return stringClaim(ctx, jwtClaimUserID)
}

func GetClubIDFromContext(ctx context.Context) (string, error) {
	return stringClaim(ctx, jwtClaimClubID)
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	roleStr, err := stringClaim(ctx, jwtClaimRole)
	if err != nil {
		return "", err
	}

	role := models.UserRole(roleStr)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
	return role, nil
}
