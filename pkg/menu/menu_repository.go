package menu

import (
	"context"
	"errors"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"

	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		CreateMenu(ctx context.Context, menu *entities.Menu) error
		GetMenuByID(ctx context.Context, id string) (*entities.Menu, error)
		GetMenusByOwner(ctx context.Context, ownerID string) ([]*entities.Menu, error)
		DeleteMenu(ctx context.Context, menu *entities.Menu) error

		// Version reads
		GetLastVersion(ctx context.Context, menuID string) (*entities.MenuVersion, error)
		GetLastVersionSummary(ctx context.Context, menuID string) (*entities.MenuVersion, error)
		GetLastAndPublicVersion(ctx context.Context, menuID string) (*entities.MenuVersion, *entities.MenuVersion, error)
		GetPublicVersion(ctx context.Context, menuID string) (*entities.MenuVersion, error)
		GetVersions(ctx context.Context, menuID string) ([]*entities.MenuVersion, error)
		CountVersions(ctx context.Context, menuID string) (int64, error)

		// Version writes
		CommitVersion(ctx context.Context, menuID string, revision int, next, replaced *entities.MenuVersion) error
		PublishVersion(ctx context.Context, menuID string, revision int, draftID uint, previousPublicID *uint) error
		UnpublishVersions(ctx context.Context, menuID string, revision int, staleVersionID *uint) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func withGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Sections.Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func latestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func (r *menuRepository) CreateMenu(ctx context.Context, menu *entities.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *menuRepository) GetMenuByID(ctx context.Context, id string) (*entities.Menu, error) {
	var menu entities.Menu
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetMenusByOwner(ctx context.Context, ownerID string) ([]*entities.Menu, error) {
	var menus []*entities.Menu
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

// DeleteMenu removes the menu with every version, section and product it owns.
func (r *menuRepository) DeleteMenu(ctx context.Context, menu *entities.Menu) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, menu.ID, menu.Revision); err != nil {
			return err
		}

		var versionIDs []uint
		if err := tx.Model(&entities.MenuVersion{}).
			Where("menu_id = ?", menu.ID).
			Pluck("id", &versionIDs).Error; err != nil {
			return err
		}
		if err := deleteVersionGraph(tx, versionIDs...); err != nil {
			return err
		}

		return tx.Where("id = ?", menu.ID).Delete(&entities.Menu{}).Error
	})
}

func (r *menuRepository) GetLastVersion(ctx context.Context, menuID string) (*entities.MenuVersion, error) {
	var version entities.MenuVersion
	if err := latestFirst(withGraph(r.db.WithContext(ctx))).
		Where("menu_id = ?", menuID).
		First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

// GetLastVersionSummary loads the draft without its sections.
func (r *menuRepository) GetLastVersionSummary(ctx context.Context, menuID string) (*entities.MenuVersion, error) {
	var version entities.MenuVersion
	if err := latestFirst(r.db.WithContext(ctx)).
		Where("menu_id = ?", menuID).
		First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

// GetLastAndPublicVersion returns the draft and the public version. Both are the same
// pointer when the draft is public; public is nil when nothing is published.
func (r *menuRepository) GetLastAndPublicVersion(ctx context.Context, menuID string) (*entities.MenuVersion, *entities.MenuVersion, error) {
	last, err := r.GetLastVersion(ctx, menuID)
	if err != nil {
		return nil, nil, err
	}
	if last.IsPublic {
		return last, last, nil
	}

	public, err := r.GetPublicVersion(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return last, nil, nil
		}
		return nil, nil, err
	}
	return last, public, nil
}

func (r *menuRepository) GetPublicVersion(ctx context.Context, menuID string) (*entities.MenuVersion, error) {
	var version entities.MenuVersion
	if err := latestFirst(withGraph(r.db.WithContext(ctx))).
		Where("menu_id = ? AND is_public = ?", menuID, true).
		First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *menuRepository) GetVersions(ctx context.Context, menuID string) ([]*entities.MenuVersion, error) {
	var versions []*entities.MenuVersion
	if err := latestFirst(withGraph(r.db.WithContext(ctx))).
		Where("menu_id = ?", menuID).
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *menuRepository) CountVersions(ctx context.Context, menuID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.MenuVersion{}).
		Where("menu_id = ?", menuID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CommitVersion inserts next with its sections and products and, when replaced is not
// nil, deletes the replaced draft. Both happen in one transaction guarded by the menu
// revision.
func (r *menuRepository) CommitVersion(ctx context.Context, menuID string, revision int, next, replaced *entities.MenuVersion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, menuID, revision); err != nil {
			return err
		}

		next.MenuID = menuID
		if err := tx.Create(next).Error; err != nil {
			return err
		}

		if replaced != nil {
			return deleteVersionGraph(tx, replaced.ID)
		}
		return nil
	})
}

// PublishVersion flags the draft public and removes the previously public version.
func (r *menuRepository) PublishVersion(ctx context.Context, menuID string, revision int, draftID uint, previousPublicID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, menuID, revision); err != nil {
			return err
		}

		if err := tx.Model(&entities.MenuVersion{}).
			Where("id = ? AND menu_id = ?", draftID, menuID).
			Update("is_public", true).Error; err != nil {
			return err
		}

		if previousPublicID != nil && *previousPublicID != draftID {
			return deleteVersionGraph(tx, *previousPublicID)
		}
		return nil
	})
}

// UnpublishVersions clears the public flag on every version of the menu. A public
// version that is no longer the draft has no further use and is deleted.
func (r *menuRepository) UnpublishVersions(ctx context.Context, menuID string, revision int, staleVersionID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bumpRevision(tx, menuID, revision); err != nil {
			return err
		}

		if staleVersionID != nil {
			if err := deleteVersionGraph(tx, *staleVersionID); err != nil {
				return err
			}
		}

		return tx.Model(&entities.MenuVersion{}).
			Where("menu_id = ? AND is_public = ?", menuID, true).
			Update("is_public", false).Error
	})
}

// bumpRevision increments the menu revision if it still equals the expected one.
func bumpRevision(tx *gorm.DB, menuID string, revision int) error {
	result := tx.Model(&entities.Menu{}).
		Where("id = ? AND revision = ?", menuID, revision).
		Update("revision", gorm.Expr("revision + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMenuConflict
	}
	return nil
}

func deleteVersionGraph(tx *gorm.DB, versionIDs ...uint) error {
	if len(versionIDs) == 0 {
		return nil
	}

	var sectionIDs []uint
	if err := tx.Model(&entities.Section{}).
		Where("version_id IN ?", versionIDs).
		Pluck("id", &sectionIDs).Error; err != nil {
		return err
	}

	if len(sectionIDs) > 0 {
		if err := tx.Where("section_id IN ?", sectionIDs).Delete(&entities.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", sectionIDs).Delete(&entities.Section{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", versionIDs).Delete(&entities.MenuVersion{}).Error
}
