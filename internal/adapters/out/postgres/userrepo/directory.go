// Package userrepo stores the users known to the purchasing service and resolves their
// display names. Users are provisioned out of band (see cmd/seed-users); the service
// itself never creates them.
package userrepo

import (
	"context"
	"time"

	"purchasing/internal/adapters/out/postgres/pgerrs"
	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// DisplayNames looks up ids in one query. Unknown ids are left out of the result.
func (d *GormUserDirectory) DisplayNames(ctx context.Context, ids ...kernel.UUID) (map[kernel.UUID]string, error) {
	names := make(map[kernel.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []UserDTO
	if err := d.db.WithContext(ctx).Select("id", "name").Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, pgerrs.Wrap("select users", err)
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		names[id] = dto.Name
	}
	return names, nil
}

// Upsert creates the user or refreshes its name and role.
func (d *GormUserDirectory) Upsert(ctx context.Context, user identity.Identity) error {
	if err := user.Validate(); err != nil {
		return err
	}

	dto := UserDTO{
		ID:        user.ID().Bytes(),
		Name:      user.Name(),
		Role:      user.Role().String(),
		CreatedAt: time.Now().UTC(),
	}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role"}),
	}).Create(&dto).Error
	return pgerrs.Wrap("upsert user", err)
}

// Get returns the stored identity of a user.
func (d *GormUserDirectory) Get(ctx context.Context, id kernel.UUID) (identity.Identity, error) {
	var dto UserDTO
	err := d.db.WithContext(ctx).Where("id = ?", id.Bytes()).Limit(1).Find(&dto).Error
	if err != nil {
		return identity.Identity{}, pgerrs.Wrap("select user", err)
	}
	if dto.ID == uuid.Nil {
		return identity.Identity{}, errs.NewObjectNotFoundError("user", id.String())
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return identity.Identity{}, err
	}
	return identity.NewIdentity(id, role, dto.Name)
}
