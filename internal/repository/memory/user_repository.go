package memory

import (
	"context"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) AddUser(ctx context.Context, data domain.User) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == data.Username || u.Email == data.Email {
			return domain.User{}, errs.ErrUserAlreadyExists
		}
	}

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	r.store.users[data.ID] = data

	return data, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, errs.ErrUserNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok {
		return domain.User{}, errs.ErrUserNotFound
	}

	return u, nil
}

func (r *UserRepository) GetUserByLogin(ctx context.Context, login string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}

	return domain.User{}, errs.ErrUserNotFound
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *UserRepository) ExistsByRole(ctx context.Context, role string) (bool, error) {
	count, err := r.CountUsers(ctx, role)
	return count > 0, err
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return errs.ErrUserNotFound
	}

	u.LastLogin = &at
	r.store.users[id] = u

	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context, role string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, u := range r.store.users {
		if role == "" || u.Role == role {
			count++
		}
	}

	return count, nil
}
