package menu

import (
	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"
)

func (s *menuService) imageURL(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	url := s.storage.PublicURL(*key)
	return &url
}

func (s *menuService) toPropertiesResponse(version *entities.MenuVersion) domain.MenuPropertiesResponse {
	return domain.MenuPropertiesResponse{
		MenuID:     version.MenuID,
		Title:      version.Title,
		Subtitle:   version.Subtitle,
		BgImageURL: s.imageURL(version.BgImageID),
		IsPublic:   version.IsPublic,
	}
}

func toSectionsResponse(version *entities.MenuVersion) domain.MenuSectionsResponse {
	sections := make([]domain.SectionResponse, 0, len(version.Sections))
	for _, section := range version.Sections {
		sections = append(sections, domain.SectionResponse{
			ID:       section.ID,
			Name:     section.Name,
			Position: section.Position,
		})
	}
	return domain.MenuSectionsResponse{
		IsPublic: version.IsPublic,
		Sections: sections,
	}
}

func (s *menuService) toProductResponse(product entities.Product) domain.ProductResponse {
	return domain.ProductResponse{
		ID:          product.ID,
		SectionID:   product.SectionID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    s.storage.PublicURL(product.ImageID),
	}
}

func (s *menuService) toSectionsWithProducts(version *entities.MenuVersion) []domain.SectionWithProductsResponse {
	sections := make([]domain.SectionWithProductsResponse, 0, len(version.Sections))
	for _, section := range version.Sections {
		products := make([]domain.ProductResponse, 0, len(section.Products))
		for _, product := range section.Products {
			products = append(products, s.toProductResponse(product))
		}
		sections = append(sections, domain.SectionWithProductsResponse{
			ID:       section.ID,
			Name:     section.Name,
			Position: section.Position,
			Products: products,
		})
	}
	return sections
}

// productSlot locates a product by its section position and its index in that section.
func productSlot(version *entities.MenuVersion, productID uint) (int, int, bool) {
	for _, section := range version.Sections {
		for i, product := range section.Products {
			if product.ID == productID {
				return section.Position, i, true
			}
		}
	}
	return 0, 0, false
}

func sectionAt(version *entities.MenuVersion, position int) *entities.Section {
	for i := range version.Sections {
		if version.Sections[i].Position == position {
			return &version.Sections[i]
		}
	}
	return nil
}
