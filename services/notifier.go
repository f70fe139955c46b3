package services

import "github.com/kellyworkos00-droid/fairm/entity"

// Notifier pushes a stored notification to the user's open sockets.
// Delivery is best effort; the row in the database is the record.
type Notifier interface {
	Push(userID uint, n entity.Notification)
}
