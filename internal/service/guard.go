package service

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// assertOwned is the ownership guard every mutation passes through: the
// caller must be the owner of the entity (or of the parent chain leading to
// it). Existence is checked before this, at load time, so a miss here always
// means "exists but not yours".
func assertOwned(ownerID, callerID primitive.ObjectID) error {
	if ownerID != callerID {
		return ErrAccessDenied
	}
	return nil
}
