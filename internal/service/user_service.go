package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"koala-user-service/internal/constant"
	"koala-user-service/internal/dto"
	"koala-user-service/internal/dto/converter"
	"koala-user-service/internal/model"
	"koala-user-service/internal/utils/errcode"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const userProfileTTL = 5 * time.Minute

// userStore is implemented by repository.UserRepository. Lookups report
// absence with gorm.ErrRecordNotFound.
type userStore interface {
	FindUserByEmailAndPassword(ctx context.Context, email, password string) (*model.User, error)
	FindUserByNicknameOrEmail(ctx context.Context, nickname, email string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// transactor is implemented by repository.UnitOfWork.
type transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserService struct {
	userRepository userStore
	uow            transactor
	encoder        PasswordEncoder
	tokenService   *TokenService
	redisService   *RedisService
	log            *logrus.Logger
	tracer         trace.Tracer
}

func NewUserService(
	userRepository userStore,
	uow transactor,
	encoder PasswordEncoder,
	tokenService *TokenService,
	redisService *RedisService,
	log *logrus.Logger,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		uow:            uow,
		encoder:        encoder,
		tokenService:   tokenService,
		redisService:   redisService,
		log:            log,
		tracer:         otel.Tracer("UserService"),
	}
}

// FindUserByEmailAndPassword compares password against the stored column
// as is, so it only matches callers that already hold the encoded form.
func (s *UserService) FindUserByEmailAndPassword(ctx context.Context, email, password string) (*dto.UserDto, bool, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.FindUserByEmailAndPassword")
	defer span.End()

	user, err := s.userRepository.FindUserByEmailAndPassword(spanCtx, email, password)
	return s.lookupResult(spanCtx, user, err)
}

// FindUserByNicknameOrEmail returns a user whose nickname or email matches.
func (s *UserService) FindUserByNicknameOrEmail(ctx context.Context, nickname, email string) (*dto.UserDto, bool, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.FindUserByNicknameOrEmail")
	defer span.End()

	user, err := s.userRepository.FindUserByNicknameOrEmail(spanCtx, nickname, email)
	return s.lookupResult(spanCtx, user, err)
}

func (s *UserService) lookupResult(ctx context.Context, user *model.User, err error) (*dto.UserDto, bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Error("Failed to look up user")
		return nil, false, errcode.ErrDatabaseError
	}
	return converter.UserToDto(user), true, nil
}

// Auth checks the credentials and issues a token pair. An unknown email
// yields errcode.ErrUserNotFound and a wrong password errcode.ErrBadCredentials.
func (s *UserService) Auth(ctx context.Context, req *dto.AuthRequest) (*dto.TokenResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.Auth")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	var tokens *dto.TokenResponse
	err := s.uow.Do(spanCtx, func(txCtx context.Context) error {
		user, err := s.userRepository.GetUserByEmail(txCtx, req.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found during login")
			return errcode.ErrUserNotFound
		}
		if err != nil {
			logger.WithError(err).Error("Database error during login")
			return errcode.ErrDatabaseError
		}

		_, matchSpan := s.tracer.Start(txCtx, "MatchPassword")
		matches := s.encoder.Matches(req.Password, user.Password)
		matchSpan.End()
		if !matches {
			logger.WithField("user_id", user.ID).Warn("Invalid password attempt")
			return errcode.ErrBadCredentials
		}

		tokens, err = s.tokenService.IssueTokenPair(txCtx, converter.UserToDto(user))
		return err
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Save encodes newUser.Password in place and persists the user, inserting
// it when ID is empty. The assigned ID is written back to newUser.
func (s *UserService) Save(ctx context.Context, newUser *dto.UserDto) error {
	spanCtx, span := s.tracer.Start(ctx, "UserService.Save")
	defer span.End()

	logger := s.log.WithContext(spanCtx)

	_, hashSpan := s.tracer.Start(spanCtx, "EncodePassword")
	encoded, err := s.encoder.Encode(newUser.Password)
	hashSpan.End()
	if err != nil {
		logger.WithError(err).Error("Failed to encode password")
		return errcode.ErrPasswordEncryption
	}
	newUser.Password = encoded

	existing := newUser.ID != ""
	user := converter.DtoToUser(newUser)
	if err := s.userRepository.Save(spanCtx, user); err != nil {
		if errors.Is(err, errcode.ErrUserAlreadyExists) {
			logger.Warn("Attempt to save a duplicate email or nickname")
			return err
		}
		logger.WithError(err).Error("Failed to save user")
		return errcode.ErrDatabaseError
	}

	newUser.ID = user.ID
	newUser.UpdatedAt = user.UpdatedAt
	if !existing {
		newUser.CreatedAt = user.CreatedAt
	}

	if existing {
		_ = s.redisService.Delete(spanCtx, fmt.Sprintf(constant.UserProfileCacheKey, user.ID))
	}

	return nil
}

// GetUser returns the profile of the user as a JSON WebResponse, served
// from redis when cached.
func (s *UserService) GetUser(ctx context.Context, id string) (string, error) {
	spanCtx, span := s.tracer.Start(ctx, "UserService.GetUser")
	defer span.End()

	logger := s.log.WithContext(spanCtx)
	cacheKey := fmt.Sprintf(constant.UserProfileCacheKey, id)

	if cached, found := s.redisService.Get(spanCtx, cacheKey); found {
		logger.Debug("User profile retrieved from redis cache")
		return cached, nil
	}

	user, err := s.userRepository.FindByID(spanCtx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn("User not found")
		return "", errcode.ErrUserNotFound
	}
	if err != nil {
		logger.WithError(err).Error("Failed to find user by id")
		return "", errcode.ErrDatabaseError
	}

	response := dto.WebResponse[*dto.UserResponse]{
		Data: converter.UserToResponse(converter.UserToDto(user)),
	}

	result, err := s.redisService.Set(spanCtx, cacheKey, response, userProfileTTL)
	if err == nil {
		return result, nil
	}

	// cache is best effort
	logger.WithError(err).Warn("Failed to save user response to redis")
	payload, err := json.Marshal(response)
	if err != nil {
		return "", errcode.ErrInternalServerError
	}
	return string(payload), nil
}
