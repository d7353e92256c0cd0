package seeder

import (
	"context"
	"errors"

	"koala-user-service/internal/dto"
	"koala-user-service/internal/utils/errcode"

	"github.com/sirupsen/logrus"
)

// UserSaver is satisfied by service.UserService, so seeded passwords go
// through the same encoder as registrations.
type UserSaver interface {
	Save(ctx context.Context, newUser *dto.UserDto) error
}

// DefaultUsers are development accounts. Passwords are plaintext here.
func DefaultUsers() []*dto.UserDto {
	return []*dto.UserDto{
		{Email: "koala@example.com", Nickname: "koala", Password: "Eucalyptus-Leaves-42!"},
		{Email: "wombat@example.com", Nickname: "wombat", Password: "Burrow-Digger-Night-7"},
	}
}

// Seed saves users and returns how many were created. Users that already
// exist are skipped, which makes seeding repeatable.
func Seed(ctx context.Context, log *logrus.Logger, saver UserSaver, users []*dto.UserDto) (int, error) {
	created := 0
	for _, user := range users {
		err := saver.Save(ctx, user)
		if errors.Is(err, errcode.ErrUserAlreadyExists) {
			log.WithField("email", user.Email).Info("Seed user already exists, skipping")
			continue
		}
		if err != nil {
			return created, err
		}

		log.WithFields(logrus.Fields{"id": user.ID, "email": user.Email}).Info("Seed user created")
		created++
	}
	return created, nil
}
