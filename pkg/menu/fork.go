package menu

import (
	"context"
	"errors"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"

	"gorm.io/gorm"
)

// edit describes one change to the draft. check runs before anything is uploaded;
// apply receives the storage keys of images, aligned with images ("" for a nil image).
type edit struct {
	images []*domain.Image
	check  func(draft *entities.MenuVersion) error
	apply  func(draft *entities.MenuVersion, keys []string) (*entities.MenuVersion, error)
}

type forkResult struct {
	draft  *entities.MenuVersion
	next   *entities.MenuVersion
	public *entities.MenuVersion
}

// fork commits a new draft derived from the current one. The current draft is replaced
// unless it is public, and images left without a referencing version are deleted once the
// transaction has committed.
func (s *menuService) fork(ctx context.Context, menu *entities.Menu, e edit) (*forkResult, error) {
	draft, public, err := s.loadDraftAndPublic(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	if e.check != nil {
		if err := e.check(draft); err != nil {
			return nil, err
		}
	}

	keys, err := s.uploadImages(ctx, e.images)
	if err != nil {
		return nil, err
	}

	next, err := e.apply(draft, keys)
	if err != nil {
		discardUploads(ctx, s.storage, nonEmpty(keys))
		return nil, err
	}

	var replaced *entities.MenuVersion
	if !draft.IsPublic {
		replaced = draft
	}

	if err := s.menuRepository.CommitVersion(ctx, menu.ID, menu.Revision, next, replaced); err != nil {
		discardUploads(ctx, s.storage, nonEmpty(keys))
		return nil, commitError(err)
	}

	result := &forkResult{draft: draft, next: next, public: public}
	if err := deleteImages(ctx, s.storage, OrphanedImages(replaced, next, public)); err != nil {
		return result, err
	}
	return result, nil
}

func (s *menuService) ownedMenu(ctx context.Context, menuID string, userID string) (*entities.Menu, error) {
	menu, err := s.menuRepository.GetMenuByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, domain.NewInternalError("failed to load menu", err)
	}

	if menu.OwnerID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return menu, nil
}

func (s *menuService) loadDraft(ctx context.Context, menuID string) (*entities.MenuVersion, error) {
	draft, err := s.menuRepository.GetLastVersion(ctx, menuID)
	if err != nil {
		return nil, versionError(err)
	}
	return draft, nil
}

func (s *menuService) loadDraftAndPublic(ctx context.Context, menuID string) (*entities.MenuVersion, *entities.MenuVersion, error) {
	draft, public, err := s.menuRepository.GetLastAndPublicVersion(ctx, menuID)
	if err != nil {
		return nil, nil, versionError(err)
	}
	return draft, public, nil
}

// uploadImages stores every non nil image exactly once. When one upload fails the
// images stored so far are discarded.
func (s *menuService) uploadImages(ctx context.Context, images []*domain.Image) ([]string, error) {
	keys := make([]string, len(images))
	for i, image := range images {
		if image == nil {
			continue
		}
		key, err := s.storage.Upload(ctx, image.Data, image.ContentType)
		if err != nil {
			discardUploads(ctx, s.storage, nonEmpty(keys))
			return nil, domain.NewInternalError("failed to upload image", err)
		}
		keys[i] = key
	}
	return keys, nil
}

func versionError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrMenuHasNoVersions
	}
	return domain.NewInternalError("failed to load menu version", err)
}

func commitError(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return err
	}
	return domain.NewInternalError("failed to save menu version", err)
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}
