package platform

import (
	"go.uber.org/zap"

	"eduplatform/models"
)

// RemoveUserAs removes the target user on behalf of an admin. An admin
// removing itself is rejected before any index is touched.
func (p *Platform) RemoveUserAs(actorID, targetID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	actor, ok := p.users[actorID]
	if !ok {
		return ErrNotFound
	}
	if actor.Role != models.RoleAdmin {
		return ErrNotAuthorized
	}
	if actorID == targetID {
		return ErrSelfRemovalForbidden
	}
	if err := p.removeUserLocked(targetID); err != nil {
		return err
	}
	p.log.Info("user removed by admin", zap.Int("admin", actorID), zap.Int("target", targetID))
	return nil
}
