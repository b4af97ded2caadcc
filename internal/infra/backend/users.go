package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"yuwelongo/internal/domain"
)

// Register creates a player account. An email that is already registered
// is reported as domain.ErrConflict with the server's message.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	body := registerRequest{
		Nombre:     reg.Name,
		Correo:     reg.Email,
		Contrasena: reg.Password,
		Rol:        domain.RolePlayer,
	}
	var raw userDTO
	err := c.do(ctx, http.MethodPost, "/usuarios", body, &raw)
	var rejected *rejectedError
	if errors.As(err, &rejected) && rejected.status == http.StatusConflict {
		msg := rejected.message
		if msg == "" {
			msg = "email already registered"
		}
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}
	user := raw.toDomain()
	if user.Email == "" {
		user.Email = reg.Email
	}
	if user.Name == "" {
		user.Name = reg.Name
	}
	return user, nil
}

func (c *Client) User(ctx context.Context, id int64) (domain.User, error) {
	var raw userDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &raw); err != nil {
		return domain.User{}, fmt.Errorf("user %d: %w", id, err)
	}
	return raw.toDomain(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	body := profileRequest{
		IDUsuario:  update.ID,
		Nombre:     update.Name,
		Correo:     update.Email,
		Contrasena: update.Password,
	}
	var raw userDTO
	if err := c.do(ctx, http.MethodPut, "/usuarios/", body, &raw); err != nil {
		return domain.User{}, fmt.Errorf("update user %d: %w", update.ID, err)
	}
	return raw.toDomain(), nil
}
