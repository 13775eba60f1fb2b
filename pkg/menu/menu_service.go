package menu

import (
	"context"
	"errors"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"
	"QR-Menu-Backend/internal/utils/qrcode"
	"QR-Menu-Backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		CreateMenu(ctx context.Context, req domain.CreateMenuRequest, userID string) (domain.MenuResponse, error)
		GetMenus(ctx context.Context, userID string) ([]domain.MenuResponse, error)
		DeleteMenu(ctx context.Context, menuID string, userID string) error

		GetMenuProperties(ctx context.Context, menuID string, userID string) (domain.MenuPropertiesResponse, error)
		EditMenuProperties(ctx context.Context, req domain.EditMenuPropertiesRequest, userID string) (domain.MenuPropertiesResponse, error)
		GetMenuSections(ctx context.Context, menuID string, userID string) (domain.MenuSectionsResponse, error)
		EditMenuSections(ctx context.Context, req domain.EditMenuSectionsRequest, userID string) (domain.MenuSectionsResponse, error)

		GetMenuProducts(ctx context.Context, menuID string, userID string) (domain.MenuProductsResponse, error)
		GetProduct(ctx context.Context, menuID string, productID uint, userID string) (domain.SingleProductResponse, error)
		AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error)
		EditProduct(ctx context.Context, req domain.EditProductRequest, userID string) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, req domain.DeleteProductRequest, userID string) error

		PublishMenu(ctx context.Context, menuID string, userID string) (domain.PublishMenuResponse, error)
		UnpublishMenu(ctx context.Context, menuID string, userID string) error
		GetPublicMenu(ctx context.Context, menuID string) (domain.PublicMenuResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		storage        storage.Storage
		qr             qrcode.Generator
		appURL         string
	}
)

func NewMenuService(menuRepository MenuRepository, storage storage.Storage, qr qrcode.Generator, appURL string) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		storage:        storage,
		qr:             qr,
		appURL:         appURL,
	}
}

func (s *menuService) CreateMenu(ctx context.Context, req domain.CreateMenuRequest, userID string) (domain.MenuResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MenuResponse{}, domain.ErrParseUUID
	}

	menuID := uuid.NewString()
	png, err := s.qr.Generate(s.appURL + "/menu/" + menuID)
	if err != nil {
		log.Errorf("failed to generate QR code for menu %s: %v", menuID, err)
		return domain.MenuResponse{}, domain.ErrQRCodeGenerationFailed
	}

	qrKey, err := s.storage.Upload(ctx, png, "image/png")
	if err != nil {
		return domain.MenuResponse{}, domain.NewInternalError("failed to upload QR code", err)
	}

	menu := &entities.Menu{
		ID:        menuID,
		OwnerID:   ownerID,
		Name:      req.Name,
		QRImageID: qrKey,
		Versions: []entities.MenuVersion{
			{
				Title:    req.Title,
				Subtitle: copyString(req.Subtitle),
				Sections: []entities.Section{},
			},
		},
	}

	if err := s.menuRepository.CreateMenu(ctx, menu); err != nil {
		discardUploads(ctx, s.storage, []string{qrKey})
		return domain.MenuResponse{}, domain.NewInternalError("failed to create menu", err)
	}

	return domain.MenuResponse{
		ID:        menu.ID,
		Name:      menu.Name,
		Title:     req.Title,
		IsPublic:  false,
		QRCodeURL: s.storage.PublicURL(menu.QRImageID),
		CreatedAt: menu.CreatedAt,
	}, nil
}

func (s *menuService) GetMenus(ctx context.Context, userID string) ([]domain.MenuResponse, error) {
	menus, err := s.menuRepository.GetMenusByOwner(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load menus", err)
	}

	res := make([]domain.MenuResponse, 0, len(menus))
	for _, menu := range menus {
		draft, err := s.menuRepository.GetLastVersionSummary(ctx, menu.ID)
		if err != nil {
			return nil, versionError(err)
		}
		res = append(res, domain.MenuResponse{
			ID:        menu.ID,
			Name:      menu.Name,
			Title:     draft.Title,
			IsPublic:  draft.IsPublic,
			QRCodeURL: s.storage.PublicURL(menu.QRImageID),
			CreatedAt: menu.CreatedAt,
		})
	}
	return res, nil
}

// DeleteMenu removes the menu rows, then every image the menu ever referenced: the QR code
// and the images of all its versions.
func (s *menuService) DeleteMenu(ctx context.Context, menuID string, userID string) error {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return err
	}

	versions, err := s.menuRepository.GetVersions(ctx, menu.ID)
	if err != nil {
		return domain.NewInternalError("failed to load menu versions", err)
	}

	if err := s.menuRepository.DeleteMenu(ctx, menu); err != nil {
		return commitError(err)
	}

	images := ImageSet{}
	if menu.QRImageID != "" {
		images.Add(menu.QRImageID)
	}
	for _, version := range versions {
		images.Union(ImageIDsOf(version))
	}
	return deleteImages(ctx, s.storage, images)
}

func (s *menuService) GetMenuProperties(ctx context.Context, menuID string, userID string) (domain.MenuPropertiesResponse, error) {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return domain.MenuPropertiesResponse{}, err
	}

	draft, err := s.menuRepository.GetLastVersionSummary(ctx, menu.ID)
	if err != nil {
		return domain.MenuPropertiesResponse{}, versionError(err)
	}
	return s.toPropertiesResponse(draft), nil
}

func (s *menuService) EditMenuProperties(ctx context.Context, req domain.EditMenuPropertiesRequest, userID string) (domain.MenuPropertiesResponse, error) {
	image, err := req.Image.Decode(domain.MaxBackgroundImageSize)
	if err != nil {
		return domain.MenuPropertiesResponse{}, err
	}
	if req.DeleteImage {
		image = nil
	}

	menu, err := s.ownedMenu(ctx, req.MenuID, userID)
	if err != nil {
		return domain.MenuPropertiesResponse{}, err
	}

	result, err := s.fork(ctx, menu, edit{
		images: []*domain.Image{image},
		apply: func(draft *entities.MenuVersion, keys []string) (*entities.MenuVersion, error) {
			var uploaded *string
			if keys[0] != "" {
				uploaded = &keys[0]
			}
			bg := resolveBackground(draft.BgImageID, req.DeleteImage, uploaded)
			return withProperties(draft, req.Title, req.Subtitle, bg), nil
		},
	})
	if err != nil {
		return domain.MenuPropertiesResponse{}, err
	}
	return s.toPropertiesResponse(result.next), nil
}

func (s *menuService) GetMenuSections(ctx context.Context, menuID string, userID string) (domain.MenuSectionsResponse, error) {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return domain.MenuSectionsResponse{}, err
	}

	draft, err := s.loadDraft(ctx, menu.ID)
	if err != nil {
		return domain.MenuSectionsResponse{}, err
	}
	return toSectionsResponse(draft), nil
}

// EditMenuSections replaces the section list. Products of sections left out of the
// request are dropped together with their images.
func (s *menuService) EditMenuSections(ctx context.Context, req domain.EditMenuSectionsRequest, userID string) (domain.MenuSectionsResponse, error) {
	menu, err := s.ownedMenu(ctx, req.MenuID, userID)
	if err != nil {
		return domain.MenuSectionsResponse{}, err
	}

	result, err := s.fork(ctx, menu, edit{
		apply: func(draft *entities.MenuVersion, _ []string) (*entities.MenuVersion, error) {
			return withSections(draft, req.Sections), nil
		},
	})
	if err != nil {
		return domain.MenuSectionsResponse{}, err
	}
	return toSectionsResponse(result.next), nil
}

func (s *menuService) GetMenuProducts(ctx context.Context, menuID string, userID string) (domain.MenuProductsResponse, error) {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return domain.MenuProductsResponse{}, err
	}

	draft, err := s.loadDraft(ctx, menu.ID)
	if err != nil {
		return domain.MenuProductsResponse{}, err
	}

	return domain.MenuProductsResponse{
		IsPublic: draft.IsPublic,
		Sections: s.toSectionsWithProducts(draft),
	}, nil
}

func (s *menuService) GetProduct(ctx context.Context, menuID string, productID uint, userID string) (domain.SingleProductResponse, error) {
	menu, err := s.ownedMenu(ctx, menuID, userID)
	if err != nil {
		return domain.SingleProductResponse{}, err
	}

	draft, err := s.loadDraft(ctx, menu.ID)
	if err != nil {
		return domain.SingleProductResponse{}, err
	}

	product, _ := findProduct(draft, productID)
	if product == nil {
		return domain.SingleProductResponse{}, domain.ErrProductNotFound
	}

	return domain.SingleProductResponse{
		IsPublic: draft.IsPublic,
		Product:  s.toProductResponse(*product),
	}, nil
}

func (s *menuService) AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error) {
	image, err := req.Image.Decode(domain.MaxProductImageSize)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	menu, err := s.ownedMenu(ctx, req.MenuID, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	var position int
	result, err := s.fork(ctx, menu, edit{
		images: []*domain.Image{image},
		check: func(draft *entities.MenuVersion) error {
			pos, ok := sectionPosition(draft, req.SectionID)
			if !ok {
				return domain.ErrSectionNotFound
			}
			position = pos
			return nil
		},
		apply: func(draft *entities.MenuVersion, keys []string) (*entities.MenuVersion, error) {
			return withNewProduct(draft, req.SectionID, entities.Product{
				Name:        req.Name,
				Description: req.Description,
				Price:       req.Price,
				ImageID:     keys[0],
			})
		},
	})
	if err != nil {
		return domain.ProductResponse{}, err
	}

	section := sectionAt(result.next, position)
	return s.toProductResponse(section.Products[len(section.Products)-1]), nil
}

// EditProduct rewrites one product. Without a new image the product keeps its current
// image key and storage is not touched.
func (s *menuService) EditProduct(ctx context.Context, req domain.EditProductRequest, userID string) (domain.ProductResponse, error) {
	image, err := req.Image.Decode(domain.MaxProductImageSize)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	menu, err := s.ownedMenu(ctx, req.MenuID, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	var position, index int
	result, err := s.fork(ctx, menu, edit{
		images: []*domain.Image{image},
		check: func(draft *entities.MenuVersion) error {
			pos, idx, ok := productSlot(draft, req.ProductID)
			if !ok {
				return domain.ErrProductNotFound
			}
			position, index = pos, idx
			return nil
		},
		apply: func(draft *entities.MenuVersion, keys []string) (*entities.MenuVersion, error) {
			current, _ := findProduct(draft, req.ProductID)
			if current == nil {
				return nil, domain.ErrProductNotFound
			}
			imageID := current.ImageID
			if keys[0] != "" {
				imageID = keys[0]
			}
			return withEditedProduct(draft, req.ProductID, entities.Product{
				Name:        req.Name,
				Description: req.Description,
				Price:       req.Price,
				ImageID:     imageID,
			})
		},
	})
	if err != nil {
		return domain.ProductResponse{}, err
	}

	return s.toProductResponse(sectionAt(result.next, position).Products[index]), nil
}

func (s *menuService) DeleteProduct(ctx context.Context, req domain.DeleteProductRequest, userID string) error {
	menu, err := s.ownedMenu(ctx, req.MenuID, userID)
	if err != nil {
		return err
	}

	_, err = s.fork(ctx, menu, edit{
		apply: func(draft *entities.MenuVersion, _ []string) (*entities.MenuVersion, error) {
			return withoutProduct(draft, req.ProductID)
		},
	})
	return err
}

func (s *menuService) GetPublicMenu(ctx context.Context, menuID string) (domain.PublicMenuResponse, error) {
	menu, err := s.menuRepository.GetMenuByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PublicMenuResponse{}, domain.ErrMenuNotFound
		}
		return domain.PublicMenuResponse{}, domain.NewInternalError("failed to load menu", err)
	}

	public, err := s.menuRepository.GetPublicVersion(ctx, menu.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PublicMenuResponse{}, domain.ErrPublicMenuNotFound
		}
		return domain.PublicMenuResponse{}, domain.NewInternalError("failed to load public menu", err)
	}

	return domain.PublicMenuResponse{
		MenuID:     menu.ID,
		Title:      public.Title,
		Subtitle:   public.Subtitle,
		BgImageURL: s.imageURL(public.BgImageID),
		Sections:   s.toSectionsWithProducts(public),
	}, nil
}
