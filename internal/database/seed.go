package database

import (
	"log"
	"time"

	"agriportal/internal/model"

	"gorm.io/gorm"
)

// Seed creates the built-in roles on first boot. It is a no-op once any
// role exists, so operator-managed installations are never overwritten.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	admin := model.Role{
		Name:               "administrator",
		Description:        "Full access to every module, may modify any record",
		IsElevated:         true,
		IsSystem:           true,
		PermissionsSavedAt: &now,
	}
	officer := model.Role{
		Name:               "field-officer",
		Description:        "Operates the enforcement chain for own records",
		IsSystem:           true,
		PermissionsSavedAt: &now,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&officer).Error; err != nil {
			return err
		}

		grants := make([]model.RolePermission, 0, 2*len(model.KnownMenus()))
		for _, menu := range model.KnownMenus() {
			grants = append(grants, model.RolePermission{
				RoleID:   admin.ID,
				MenuID:   menu,
				AuthType: model.AuthFull,
			})

			// Field officers work the case chain and read reports; the
			// administrative menus stay closed.
			authType := model.AuthNone
			switch menu {
			case model.MenuInspectionPlanning, model.MenuFieldExecution,
				model.MenuSeizureManagement, model.MenuLabSamples, model.MenuLegalModule:
				authType = model.AuthFull
			case model.MenuReports:
				authType = model.AuthRead
			}
			grants = append(grants, model.RolePermission{
				RoleID:   officer.ID,
				MenuID:   menu,
				AuthType: authType,
			})
		}

		if err := tx.Create(&grants).Error; err != nil {
			return err
		}

		log.Println("Seeded built-in roles: administrator, field-officer")
		return nil
	})
}
