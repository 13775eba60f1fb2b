package menu

import (
	"context"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"
)

// publishStatus reports whether the draft can be published.
func publishStatus(draft *entities.MenuVersion) string {
	if len(draft.Sections) == 0 {
		return domain.PublishStatusNoSections
	}
	for _, section := range draft.Sections {
		if len(section.Products) == 0 {
			return domain.PublishStatusEmptySection
		}
	}
	return domain.PublishStatusPublished
}

// PublishMenu promotes the draft to the public version and removes the one it succeeds.
// A draft without sections or with an empty section is left untouched and reported
// through the publish status.
func (s *menuService) PublishMenu(ctx context.Context, menuID string, userID string) (domain.PublishMenuResponse, error) {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return domain.PublishMenuResponse{}, err
	}

	draft, public, err := s.loadDraftAndPublic(ctx, menu.ID)
	if err != nil {
		return domain.PublishMenuResponse{}, err
	}

	if draft.IsPublic {
		return domain.PublishMenuResponse{}, domain.ErrMenuAlreadyPublic
	}

	if status := publishStatus(draft); status != domain.PublishStatusPublished {
		return domain.PublishMenuResponse{Success: false, PublishStatus: status}, nil
	}

	var previousID *uint
	if public != nil {
		previousID = &public.ID
	}

	if err := s.menuRepository.PublishVersion(ctx, menu.ID, menu.Revision, draft.ID, previousID); err != nil {
		return domain.PublishMenuResponse{}, commitError(err)
	}

	if err := deleteImages(ctx, s.storage, ImageIDsOf(public).Minus(ImageIDsOf(draft))); err != nil {
		return domain.PublishMenuResponse{}, err
	}

	return domain.PublishMenuResponse{Success: true, PublishStatus: domain.PublishStatusPublished}, nil
}

// UnpublishMenu hides the menu from customers. When the public version is no longer the
// draft it will never be served again, so it is deleted along with the images only it
// referenced.
func (s *menuService) UnpublishMenu(ctx context.Context, menuID string, userID string) error {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return err
	}

	draft, public, err := s.loadDraftAndPublic(ctx, menu.ID)
	if err != nil {
		return err
	}

	if public == nil {
		return nil
	}

	var stale *entities.MenuVersion
	var staleID *uint
	if public.ID != draft.ID {
		stale = public
		staleID = &public.ID
	}

	if err := s.menuRepository.UnpublishVersions(ctx, menu.ID, menu.Revision, staleID); err != nil {
		return commitError(err)
	}

	if stale == nil {
		return nil
	}
	return deleteImages(ctx, s.storage, ImageIDsOf(stale).Minus(ImageIDsOf(draft)))
}
