package apiclient

import (
	"context"
	"fmt"
)

// Preferences is the per-user notification preference set.
type Preferences struct {
	EmailEnabled bool `json:"emailEnabled"`
	SMSEnabled   bool `json:"smsEnabled"`
	PushEnabled  bool `json:"pushEnabled"`
	InvoiceDue   bool `json:"invoiceDue"`
	Maintenance  bool `json:"maintenance"`
	Announcement bool `json:"announcement"`
}

// UnreadCount is the unread-notification counter the dashboards poll.
type UnreadCount struct {
	Count int `json:"count"`
}

// NotificationService wraps the /notifications endpoints.
type NotificationService struct {
	client *Client
}

// GetPreferences fetches the current user's preferences.
func (s *NotificationService) GetPreferences(ctx context.Context) (*Preferences, error) {
	var prefs Preferences
	if err := s.client.get(ctx, "/notifications/preferences", &prefs); err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &prefs, nil
}

// UpdatePreferences replaces the current user's preferences.
func (s *NotificationService) UpdatePreferences(ctx context.Context, prefs Preferences) error {
	if err := s.client.put(ctx, "/notifications/preferences", prefs, nil); err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

// Unread fetches the unread-notification count.
func (s *NotificationService) Unread(ctx context.Context) (int, error) {
	var count UnreadCount
	if err := s.client.get(ctx, "/notifications/unread", &count); err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count.Count, nil
}
