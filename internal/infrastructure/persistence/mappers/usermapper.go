package mappers

import (
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) *user.User
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) []*user.User
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return user.ReconstructUser(
		model.ID,
		model.SID,
		model.Email,
		model.Username,
		model.FirstName,
		model.LastName,
		model.Phone,
		vo.Role(model.Role),
		model.CompanyID,
		model.IsStaff,
		model.IsActive,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		Email:        entity.Email(),
		Username:     entity.Username(),
		FirstName:    entity.FirstName(),
		LastName:     entity.LastName(),
		Phone:        entity.Phone(),
		Role:         entity.Role().String(),
		CompanyID:    entity.CompanyID(),
		IsStaff:      entity.IsStaff(),
		IsActive:     entity.IsActive(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(list []*models.UserModel) []*user.User {
	entities := make([]*user.User, 0, len(list))
	for _, model := range list {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
