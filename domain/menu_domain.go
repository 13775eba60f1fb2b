package domain

import (
	"time"
)

const (
	PublishStatusPublished    = "published"
	PublishStatusNoSections   = "no-sections"
	PublishStatusEmptySection = "empty-section"
)

var (
	MessageSuccessCreateMenu         = "menu created successfully"
	MessageSuccessGetMenus           = "menus retrieved successfully"
	MessageSuccessDeleteMenu         = "menu deleted successfully"
	MessageSuccessGetMenuProperties  = "menu properties retrieved successfully"
	MessageSuccessEditMenuProperties = "menu properties updated successfully"
	MessageSuccessGetMenuSections    = "menu sections retrieved successfully"
	MessageSuccessEditMenuSections   = "menu sections updated successfully"
	MessageSuccessGetProducts        = "products retrieved successfully"
	MessageSuccessAddProduct         = "product added successfully"
	MessageSuccessEditProduct        = "product updated successfully"
	MessageSuccessDeleteProduct      = "product deleted successfully"
	MessageSuccessPublishMenu        = "menu publish processed"
	MessageSuccessUnpublishMenu      = "menu unpublished successfully"
	MessageSuccessGetPublicMenu      = "public menu retrieved successfully"

	MessageFailedCreateMenu         = "failed to create menu"
	MessageFailedGetMenus           = "failed to retrieve menus"
	MessageFailedDeleteMenu         = "failed to delete menu"
	MessageFailedGetMenuProperties  = "failed to retrieve menu properties"
	MessageFailedEditMenuProperties = "failed to update menu properties"
	MessageFailedGetMenuSections    = "failed to retrieve menu sections"
	MessageFailedEditMenuSections   = "failed to update menu sections"
	MessageFailedGetProducts        = "failed to retrieve products"
	MessageFailedAddProduct         = "failed to add product"
	MessageFailedEditProduct        = "failed to update product"
	MessageFailedDeleteProduct      = "failed to delete product"
	MessageFailedPublishMenu        = "failed to publish menu"
	MessageFailedUnpublishMenu      = "failed to unpublish menu"
	MessageFailedGetPublicMenu      = "failed to retrieve public menu"

	ErrMenuNotFound           = NewNotFoundError("menu not found")
	ErrPublicMenuNotFound     = NewNotFoundError("menu is not published")
	ErrProductNotFound        = NewNotFoundError("product not found")
	ErrSectionNotFound        = NewBadRequestError("section does not exist")
	ErrMenuAlreadyPublic      = NewBadRequestError("menu is already published")
	ErrInvalidImageType       = NewBadRequestError("image must be a jpeg or png")
	ErrInvalidImageData       = NewBadRequestError("image data is not valid base64")
	ErrImageTooLarge          = NewBadRequestError("image exceeds the maximum size")
	ErrInvalidProductID       = NewBadRequestError("invalid product id")
	ErrUnauthorizedAccess     = NewForbiddenError("unauthorized access to menu")
	ErrMenuConflict           = NewConflictError("menu was modified by another request, reload and retry")
	ErrMenuHasNoVersions      = NewInternalError("menu has no versions", nil)
	ErrProductNotInVersion    = NewInternalError("product is not part of the menu version", nil)
	ErrQRCodeGenerationFailed = NewInternalError("failed to generate QR code", nil)
)

type (
	CreateMenuRequest struct {
		Name     string  `json:"name" validate:"required,max=100"`
		Title    string  `json:"title" validate:"required,max=100"`
		Subtitle *string `json:"subtitle" validate:"omitempty,max=200"`
	}

	MenuResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Title     string    `json:"title"`
		IsPublic  bool      `json:"is_public"`
		QRCodeURL string    `json:"qr_code_url"`
		CreatedAt time.Time `json:"created_at"`
	}

	EditMenuPropertiesRequest struct {
		MenuID      string       `json:"-"`
		Title       string       `json:"title" validate:"required,max=100"`
		Subtitle    *string      `json:"subtitle" validate:"omitempty,max=200"`
		DeleteImage bool         `json:"delete_image"`
		Image       *ImageUpload `json:"image"`
	}

	MenuPropertiesResponse struct {
		MenuID     string  `json:"menu_id"`
		Title      string  `json:"title"`
		Subtitle   *string `json:"subtitle"`
		BgImageURL *string `json:"bg_image_url"`
		IsPublic   bool    `json:"is_public"`
	}

	SectionInput struct {
		ID   *uint  `json:"id"`
		Name string `json:"name" validate:"required,max=100"`
	}

	EditMenuSectionsRequest struct {
		MenuID   string         `json:"-"`
		Sections []SectionInput `json:"sections" validate:"dive"`
	}

	SectionResponse struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Position int    `json:"position"`
	}

	MenuSectionsResponse struct {
		IsPublic bool              `json:"is_public"`
		Sections []SectionResponse `json:"sections"`
	}

	AddProductRequest struct {
		MenuID      string       `json:"-"`
		SectionID   uint         `json:"section_id" validate:"required"`
		Name        string       `json:"name" validate:"required,max=100"`
		Description *string      `json:"description" validate:"omitempty,max=500"`
		Price       int          `json:"price" validate:"gte=0"`
		Image       *ImageUpload `json:"image" validate:"required"`
	}

	EditProductRequest struct {
		MenuID      string       `json:"-"`
		ProductID   uint         `json:"-"`
		Name        string       `json:"name" validate:"required,max=100"`
		Description *string      `json:"description" validate:"omitempty,max=500"`
		Price       int          `json:"price" validate:"gte=0"`
		Image       *ImageUpload `json:"image"`
	}

	DeleteProductRequest struct {
		MenuID    string `json:"-"`
		ProductID uint   `json:"-"`
	}

	ProductResponse struct {
		ID          uint    `json:"id"`
		SectionID   uint    `json:"section_id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Price       int     `json:"price"`
		ImageURL    string  `json:"image_url"`
	}

	SectionWithProductsResponse struct {
		ID       uint              `json:"id"`
		Name     string            `json:"name"`
		Position int               `json:"position"`
		Products []ProductResponse `json:"products"`
	}

	MenuProductsResponse struct {
		IsPublic bool                          `json:"is_public"`
		Sections []SectionWithProductsResponse `json:"sections"`
	}

	SingleProductResponse struct {
		IsPublic bool            `json:"is_public"`
		Product  ProductResponse `json:"product"`
	}

	PublishMenuResponse struct {
		Success       bool   `json:"success"`
		PublishStatus string `json:"publish_status"`
	}

	PublicMenuResponse struct {
		MenuID     string                        `json:"menu_id"`
		Title      string                        `json:"title"`
		Subtitle   *string                       `json:"subtitle"`
		BgImageURL *string                       `json:"bg_image_url"`
		Sections   []SectionWithProductsResponse `json:"sections"`
	}
)
