package utils

import (
	"context"

	"carbon-register/pkg/apperrors"
	"carbon-register/pkg/contextkeys"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}
