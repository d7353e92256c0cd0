package converter

import (
	"koala-user-service/internal/dto"
	"koala-user-service/internal/model"
)

// UserToDto copies every persisted field into the transfer shape.
func UserToDto(user *model.User) *dto.UserDto {
	return &dto.UserDto{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// DtoToUser is the inverse of UserToDto. The password is copied as is, so
// callers must encode it first.
func DtoToUser(user *dto.UserDto) *model.User {
	return &model.User{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UserToResponse(user *dto.UserDto) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt.Unix(),
		UpdatedAt: user.UpdatedAt.Unix(),
	}
}
