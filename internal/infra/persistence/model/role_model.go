package model

// RoleModel mirrors the 'roles' reference table.
type RoleModel struct {
	ID   int16  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
