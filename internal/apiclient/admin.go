package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	domainsession "github.com/estately/ui-client/internal/domain/session"
)

// User is a managed account as the admin endpoints return it.
type User struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	FullName  string             `json:"fullName"`
	Phone     string             `json:"phone,omitempty"`
	Role      domainsession.Role `json:"role"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
}

// CreateUserRequest carries the fields for creating a user.
type CreateUserRequest struct {
	Email    string             `json:"email"`
	FullName string             `json:"fullName"`
	Phone    string             `json:"phone,omitempty"`
	Role     domainsession.Role `json:"role"`
	Password string             `json:"password"`
}

// UpdateUserRequest carries the mutable fields of a user. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	FullName *string             `json:"fullName,omitempty"`
	Phone    *string             `json:"phone,omitempty"`
	Role     *domainsession.Role `json:"role,omitempty"`
	IsActive *bool               `json:"isActive,omitempty"`
}

// AdminService wraps the /admin endpoints.
type AdminService struct {
	client *Client
}

// ListUsers fetches a page of users.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var users []User
	if err := s.client.get(ctx, "/admin/users?"+q.Encode(), &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser fetches one user by ID.
func (s *AdminService) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/admin/users/"+url.PathEscape(id), &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// CreateUser creates a user account.
func (s *AdminService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := s.client.post(ctx, "/admin/users", req, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// UpdateUser updates a user account.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var user User
	if err := s.client.put(ctx, "/admin/users/"+url.PathEscape(id), req, &user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/admin/users/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
