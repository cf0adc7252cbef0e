package platform

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"eduplatform/models"
)

// The platform is the single owner of every Notification record; users
// hold only the ids, in delivery order. Read paths therefore never need
// to deduplicate between a per-user view and a platform-wide one.

// AddNotification creates a notification for the recipient and appends
// it to the recipient's delivery list.
func (p *Platform) AddNotification(recipientID int, message string, priority int) (*models.Notification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notifyLocked(recipientID, message, priority)
}

func (p *Platform) notifyLocked(recipientID int, message string, priority int) (*models.Notification, error) {
	u, ok := p.users[recipientID]
	if !ok {
		return nil, ErrNotFound
	}
	n := &models.Notification{
		ID:          p.ids.Next(KindNotification),
		Message:     message,
		RecipientID: recipientID,
		CreatedAt:   time.Now(),
		Priority:    priority,
	}
	p.notifications[n.ID] = n
	u.Notifications = append(u.Notifications, n.ID)
	p.log.Info("notification created",
		zap.Int("id", n.ID),
		zap.Int("recipient", recipientID),
		zap.Int("priority", priority))
	return n, nil
}

// NotificationFilter narrows a notification listing.
type NotificationFilter struct {
	// UnreadOnly drops notifications already marked as read.
	UnreadOnly bool
	// ImportantOnly drops notifications with priority below 1.
	ImportantOnly bool
}

// Notifications returns the user's notifications ordered by descending
// priority; notifications of equal priority keep their delivery order.
func (p *Platform) Notifications(userID int, filter NotificationFilter) ([]*models.Notification, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	u, ok := p.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]*models.Notification, 0, len(u.Notifications))
	for _, id := range u.Notifications {
		n := p.notifications[id]
		if filter.UnreadOnly && n.IsRead {
			continue
		}
		if filter.ImportantOnly && n.Priority < 1 {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
func (p *Platform) MarkNotificationRead(userID, notificationID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.users[userID]
	if !ok {
		return ErrNotFound
	}
	for _, id := range u.Notifications {
		if id == notificationID {
			p.notifications[id].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

// DeleteNotification removes a notification from the user's list and
// from the platform store.
func (p *Platform) DeleteNotification(userID, notificationID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.users[userID]
	if !ok {
		return ErrNotFound
	}
	for i, id := range u.Notifications {
		if id == notificationID {
			u.Notifications = append(u.Notifications[:i], u.Notifications[i+1:]...)
			delete(p.notifications, notificationID)
			return nil
		}
	}
	return ErrNotFound
}
