package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel mirrors the 'users' table. Email and username carry unique indexes.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Username     string    `gorm:"type:varchar(32);unique;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	BirthDate    time.Time `gorm:"type:date;not null"`
	PasswordHash []byte    `gorm:"type:bytea;not null"`
	PasswordSalt []byte    `gorm:"type:bytea;not null"`
	IsDeleted    bool      `gorm:"not null;default:false"`
	LastLoginAt  time.Time
	ModifiedAt   time.Time
	CreatedAt    time.Time

	Roles         []RoleModel          `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
	WeightHistory []WeightHistoryModel `gorm:"foreignKey:UserID"`
	PointsHistory []PointsHistoryModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// WeightHistoryModel mirrors the 'weight_histories' table.
type WeightHistoryModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	WeighingDate time.Time       `gorm:"type:date;not null"`
	Weight       decimal.Decimal `gorm:"type:numeric(6,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (WeightHistoryModel) TableName() string {
	return "weight_histories"
}

// PointsHistoryModel mirrors the 'points_histories' table.
type PointsHistoryModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Points    int       `gorm:"not null"`
	Reason    string    `gorm:"type:varchar(255)"`
	AwardedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PointsHistoryModel) TableName() string {
	return "points_histories"
}
