package user

import (
	domain "laudos-api/internal/domain/user"
	"laudos-api/internal/infrastructure/db/models"
)

func fromDBModel(m *models.User) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.Password,
		UserType:     domain.Type(m.UserType),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
