package menu

import (
	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"
)

// The functions below never touch their input. Each returns a new, unsaved version graph
// (zero primary keys) derived from the draft, ready to be committed.

func cloneVersion(draft *entities.MenuVersion) *entities.MenuVersion {
	next := forkHeader(draft)
	next.Sections = cloneSections(draft.Sections)
	return next
}

// forkHeader copies the version level properties and leaves the section list empty.
func forkHeader(draft *entities.MenuVersion) *entities.MenuVersion {
	return &entities.MenuVersion{
		MenuID:    draft.MenuID,
		Title:     draft.Title,
		Subtitle:  copyString(draft.Subtitle),
		BgImageID: copyString(draft.BgImageID),
		Sections:  make([]entities.Section, 0, len(draft.Sections)),
	}
}

func cloneSections(sections []entities.Section) []entities.Section {
	out := make([]entities.Section, 0, len(sections))
	for _, section := range sections {
		out = append(out, entities.Section{
			Name:     section.Name,
			Position: section.Position,
			Products: cloneProducts(section.Products),
		})
	}
	return out
}

func cloneProducts(products []entities.Product) []entities.Product {
	out := make([]entities.Product, 0, len(products))
	for _, product := range products {
		out = append(out, cloneProduct(product))
	}
	return out
}

func cloneProduct(p entities.Product) entities.Product {
	return entities.Product{
		Name:        p.Name,
		Description: copyString(p.Description),
		Price:       p.Price,
		ImageID:     p.ImageID,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// resolveBackground applies the background precedence: deletion wins, then a freshly
// uploaded image, then the current background.
func resolveBackground(current *string, deleteImage bool, uploaded *string) *string {
	if deleteImage {
		return nil
	}
	if uploaded != nil {
		return copyString(uploaded)
	}
	return copyString(current)
}

func withProperties(draft *entities.MenuVersion, title string, subtitle, bgImageID *string) *entities.MenuVersion {
	next := cloneVersion(draft)
	next.Title = title
	next.Subtitle = copyString(subtitle)
	next.BgImageID = copyString(bgImageID)
	return next
}

// sectionPosition resolves a section id of the draft to its position.
func sectionPosition(draft *entities.MenuVersion, sectionID uint) (int, bool) {
	for _, section := range draft.Sections {
		if section.ID == sectionID {
			return section.Position, true
		}
	}
	return 0, false
}

// withNewProduct appends product to the section identified by sectionID. Sections of the
// new graph have no ids yet, so the target is matched by position.
func withNewProduct(draft *entities.MenuVersion, sectionID uint, product entities.Product) (*entities.MenuVersion, error) {
	position, ok := sectionPosition(draft, sectionID)
	if !ok {
		return nil, domain.ErrSectionNotFound
	}

	next := cloneVersion(draft)
	for i := range next.Sections {
		if next.Sections[i].Position == position {
			next.Sections[i].Products = append(next.Sections[i].Products, cloneProduct(product))
			return next, nil
		}
	}
	return nil, domain.ErrSectionNotFound
}

func findProduct(version *entities.MenuVersion, productID uint) (*entities.Product, *entities.Section) {
	for i := range version.Sections {
		section := &version.Sections[i]
		for j := range section.Products {
			if section.Products[j].ID == productID {
				return &section.Products[j], section
			}
		}
	}
	return nil, nil
}

// withEditedProduct replaces the fields of the product with the given id. Every other
// product is copied unchanged.
func withEditedProduct(draft *entities.MenuVersion, productID uint, edited entities.Product) (*entities.MenuVersion, error) {
	next := forkHeader(draft)

	found := false
	for _, section := range draft.Sections {
		products := make([]entities.Product, 0, len(section.Products))
		for _, product := range section.Products {
			if product.ID == productID {
				found = true
				products = append(products, cloneProduct(edited))
				continue
			}
			products = append(products, cloneProduct(product))
		}
		next.Sections = append(next.Sections, entities.Section{
			Name:     section.Name,
			Position: section.Position,
			Products: products,
		})
	}

	if !found {
		return nil, domain.ErrProductNotFound
	}
	return next, nil
}

// withoutProduct drops the product with the given id from its section.
func withoutProduct(draft *entities.MenuVersion, productID uint) (*entities.MenuVersion, error) {
	_, owner := findProduct(draft, productID)
	if owner == nil {
		return nil, domain.ErrProductNotInVersion
	}

	next := forkHeader(draft)
	for _, section := range draft.Sections {
		products := section.Products
		if section.ID == owner.ID {
			products = make([]entities.Product, 0, len(section.Products))
			for _, product := range section.Products {
				if product.ID != productID {
					products = append(products, product)
				}
			}
		}
		next.Sections = append(next.Sections, entities.Section{
			Name:     section.Name,
			Position: section.Position,
			Products: cloneProducts(products),
		})
	}
	return next, nil
}

// withSections rebuilds the section list from the requested order. Products follow the
// section whose id they carried; products of sections missing from the request are
// dropped. Positions are 1-based request indexes.
func withSections(draft *entities.MenuVersion, sections []domain.SectionInput) *entities.MenuVersion {
	next := forkHeader(draft)

	for i, input := range sections {
		products := []entities.Product{}
		if input.ID != nil {
			for _, existing := range draft.Sections {
				for _, product := range existing.Products {
					if product.SectionID == *input.ID {
						products = append(products, cloneProduct(product))
					}
				}
			}
		}
		next.Sections = append(next.Sections, entities.Section{
			Name:     input.Name,
			Position: i + 1,
			Products: products,
		})
	}
	return next
}
