package auth

import (
	"github.com/squareonerentals/squareone/internal/models"
)

// CanManageResource is the single ownership policy for mutating
// endpoints: the owner of a resource and any admin may act on it,
// everyone else may not. Every owner-or-admin check in the service layer
// goes through here so the rule cannot drift between endpoints.
func CanManageResource(caller *models.User, ownerID string) bool {
	if caller == nil {
		return false
	}
	return caller.IsAdmin() || caller.ID == ownerID
}
