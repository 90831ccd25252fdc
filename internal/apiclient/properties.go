package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Property is a managed unit as the backend returns it.
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	UnitCount int       `json:"unitCount"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CoOwner is one co-ownership entry on a property.
type CoOwner struct {
	UserID       string  `json:"userId"`
	FullName     string  `json:"fullName"`
	SharePercent float64 `json:"sharePercent"`
}

// TransferRequest initiates an ownership transfer.
type TransferRequest struct {
	PropertyID string `json:"propertyId"`
	ToUserID   string `json:"toUserId"`
	Note       string `json:"note,omitempty"`
}

// Transfer is the state of an ownership-transfer workflow.
type Transfer struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	Status     string    `json:"status"` // pending, accepted, rejected, completed
	CreatedAt  time.Time `json:"createdAt"`
}

// PropertyService wraps the property and ownership-transfer endpoints.
type PropertyService struct {
	client *Client
}

// List fetches a page of properties.
func (s *PropertyService) List(ctx context.Context, limit, offset int) ([]Property, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var properties []Property
	if err := s.client.get(ctx, "/admin/properties?"+q.Encode(), &properties); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

// Get fetches one property by ID.
func (s *PropertyService) Get(ctx context.Context, id string) (*Property, error) {
	var property Property
	if err := s.client.get(ctx, "/admin/properties/"+url.PathEscape(id), &property); err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &property, nil
}

// CoOwners lists the co-owners of a property.
func (s *PropertyService) CoOwners(ctx context.Context, propertyID string) ([]CoOwner, error) {
	var coOwners []CoOwner
	path := "/admin/properties/" + url.PathEscape(propertyID) + "/co-owners"
	if err := s.client.get(ctx, path, &coOwners); err != nil {
		return nil, fmt.Errorf("list co-owners: %w", err)
	}
	return coOwners, nil
}

// AddCoOwner registers a co-owner on a property.
func (s *PropertyService) AddCoOwner(ctx context.Context, propertyID string, coOwner CoOwner) error {
	path := "/admin/properties/" + url.PathEscape(propertyID) + "/co-owners"
	if err := s.client.post(ctx, path, coOwner, nil); err != nil {
		return fmt.Errorf("add co-owner: %w", err)
	}
	return nil
}

// InitiateTransfer starts an ownership-transfer workflow.
func (s *PropertyService) InitiateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error) {
	var transfer Transfer
	if err := s.client.post(ctx, "/owner/transfers", req, &transfer); err != nil {
		return nil, fmt.Errorf("initiate transfer: %w", err)
	}
	return &transfer, nil
}

// TransferStatus fetches the state of a transfer workflow.
func (s *PropertyService) TransferStatus(ctx context.Context, transferID string) (*Transfer, error) {
	var transfer Transfer
	if err := s.client.get(ctx, "/owner/transfers/"+url.PathEscape(transferID), &transfer); err != nil {
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &transfer, nil
}
