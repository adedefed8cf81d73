package transport

import (
	"context"

	"warehouse-be/internal/user"
	"warehouse-be/internal/utils"
)

// callerFrom returns the identity the auth middleware attached to ctx.
func callerFrom(ctx context.Context) (user.Identity, bool) {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return user.Identity{}, false
	}
	return user.Identity{
		UserID: id,
		Login:  utils.GetUserLoginFromContext(ctx),
		Role:   user.Role(utils.GetUserRoleFromContext(ctx)),
	}, true
}
