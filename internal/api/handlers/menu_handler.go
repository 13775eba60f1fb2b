package handlers

import (
	"errors"
	"strconv"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/internal/api/presenters"
	"QR-Menu-Backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		CreateMenu(c *fiber.Ctx) error
		GetMenus(c *fiber.Ctx) error
		DeleteMenu(c *fiber.Ctx) error
		GetMenuProperties(c *fiber.Ctx) error
		EditMenuProperties(c *fiber.Ctx) error
		GetMenuSections(c *fiber.Ctx) error
		EditMenuSections(c *fiber.Ctx) error
		GetMenuProducts(c *fiber.Ctx) error
		GetProduct(c *fiber.Ctx) error
		AddProduct(c *fiber.Ctx) error
		EditProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		PublishMenu(c *fiber.Ctx) error
		UnpublishMenu(c *fiber.Ctx) error
		GetPublicMenu(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

// statusCode maps a service error to the HTTP status of its kind.
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func failed(c *fiber.Ctx, message string, err error) error {
	return presenters.ErrorResponse(c, statusCode(err), message, err)
}

func productID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("productId"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidProductID
	}
	return uint(id), nil
}

func (h *menuHandler) CreateMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateMenuRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenu, err)
	}

	res, err := h.menuService.CreateMenu(c.Context(), *req, userID)
	if err != nil {
		return failed(c, domain.MessageFailedCreateMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenu)
}

func (h *menuHandler) GetMenus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetMenus(c.Context(), userID)
	if err != nil {
		return failed(c, domain.MessageFailedGetMenus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenus)
}

func (h *menuHandler) DeleteMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.menuService.DeleteMenu(c.Context(), c.Params("menuId"), userID); err != nil {
		return failed(c, domain.MessageFailedDeleteMenu, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenu)
}

func (h *menuHandler) GetMenuProperties(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetMenuProperties(c.Context(), c.Params("menuId"), userID)
	if err != nil {
		return failed(c, domain.MessageFailedGetMenuProperties, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuProperties)
}

func (h *menuHandler) EditMenuProperties(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.EditMenuPropertiesRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.MenuID = c.Params("menuId")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditMenuProperties, err)
	}

	res, err := h.menuService.EditMenuProperties(c.Context(), *req, userID)
	if err != nil {
		return failed(c, domain.MessageFailedEditMenuProperties, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditMenuProperties)
}

func (h *menuHandler) GetMenuSections(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetMenuSections(c.Context(), c.Params("menuId"), userID)
	if err != nil {
		return failed(c, domain.MessageFailedGetMenuSections, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuSections)
}

func (h *menuHandler) EditMenuSections(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.EditMenuSectionsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.MenuID = c.Params("menuId")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditMenuSections, err)
	}

	res, err := h.menuService.EditMenuSections(c.Context(), *req, userID)
	if err != nil {
		return failed(c, domain.MessageFailedEditMenuSections, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditMenuSections)
}

func (h *menuHandler) GetMenuProducts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetMenuProducts(c.Context(), c.Params("menuId"), userID)
	if err != nil {
		return failed(c, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *menuHandler) GetProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := productID(c)
	if err != nil {
		return failed(c, domain.MessageFailedGetProducts, err)
	}

	res, err := h.menuService.GetProduct(c.Context(), c.Params("menuId"), id, userID)
	if err != nil {
		return failed(c, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProducts)
}

func (h *menuHandler) AddProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.MenuID = c.Params("menuId")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	res, err := h.menuService.AddProduct(c.Context(), *req, userID)
	if err != nil {
		return failed(c, domain.MessageFailedAddProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddProduct)
}

func (h *menuHandler) EditProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.EditProductRequest)

	id, err := productID(c)
	if err != nil {
		return failed(c, domain.MessageFailedEditProduct, err)
	}

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.MenuID = c.Params("menuId")
	req.ProductID = id

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditProduct, err)
	}

	res, err := h.menuService.EditProduct(c.Context(), *req, userID)
	if err != nil {
		return failed(c, domain.MessageFailedEditProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditProduct)
}

func (h *menuHandler) DeleteProduct(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := productID(c)
	if err != nil {
		return failed(c, domain.MessageFailedDeleteProduct, err)
	}

	req := domain.DeleteProductRequest{MenuID: c.Params("menuId"), ProductID: id}
	if err := h.menuService.DeleteProduct(c.Context(), req, userID); err != nil {
		return failed(c, domain.MessageFailedDeleteProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

func (h *menuHandler) PublishMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.PublishMenu(c.Context(), c.Params("menuId"), userID)
	if err != nil {
		return failed(c, domain.MessageFailedPublishMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessPublishMenu)
}

func (h *menuHandler) UnpublishMenu(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.menuService.UnpublishMenu(c.Context(), c.Params("menuId"), userID); err != nil {
		return failed(c, domain.MessageFailedUnpublishMenu, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnpublishMenu)
}

func (h *menuHandler) GetPublicMenu(c *fiber.Ctx) error {
	res, err := h.menuService.GetPublicMenu(c.Context(), c.Params("menuId"))
	if err != nil {
		return failed(c, domain.MessageFailedGetPublicMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPublicMenu)
}
