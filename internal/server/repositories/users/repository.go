package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	FindByUserNameOrEmail(ctx context.Context, userName, email string) (*models.User, error)
}
