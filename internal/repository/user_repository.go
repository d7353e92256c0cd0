package repository

import (
	"context"
	"errors"

	"koala-user-service/internal/model"
	"koala-user-service/internal/utils/errcode"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository lookups return gorm.ErrRecordNotFound when nothing matches.
type UserRepository struct {
	Repository[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		Repository: Repository[model.User]{db},
	}
}

// FindUserByEmailAndPassword matches the stored password column verbatim.
func (r *UserRepository) FindUserByEmailAndPassword(ctx context.Context, email, password string) (*model.User, error) {
	user := new(model.User)
	err := r.getDb(ctx).Where("email = ? AND password = ?", email, password).Take(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByNicknameOrEmail returns the first user matching either value.
func (r *UserRepository) FindUserByNicknameOrEmail(ctx context.Context, nickname, email string) (*model.User, error) {
	user := new(model.User)
	err := r.getDb(ctx).Where("nickname = ? OR email = ?", nickname, email).Take(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := new(model.User)
	if err := r.getDb(ctx).Where("email = ?", email).Take(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := new(model.User)
	if err := r.FindById(ctx, user, id); err != nil {
		return nil, err
	}
	return user, nil
}

// Save inserts the user when it has no id yet and updates it otherwise.
// Updates keep the stored created_at. A unique constraint violation is
// reported as errcode.ErrUserAlreadyExists.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	var omit []string
	if user.ID != "" {
		omit = append(omit, "created_at")
	}
	err := r.Repository.Save(ctx, user, omit...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errcode.ErrUserAlreadyExists
	}
	return err
}
