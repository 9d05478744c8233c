package dbmysql

import (
	"context"

	"gorm.io/gorm"
)

// UserDirectory answers "does this user still exist in this tenant" for the
// token verifier.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) Exists(ctx context.Context, tenantID, userID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&User{}).
		Where("user_id = ? AND tenant_id = ? AND status = ?", userID, tenantID, "active").
		Count(&count).Error
	return count > 0, err
}
