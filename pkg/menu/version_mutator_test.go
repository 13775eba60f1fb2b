package menu

import (
	"testing"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftFixture() *entities.MenuVersion {
	return &entities.MenuVersion{
		ID:        7,
		MenuID:    "menu-1",
		Title:     "Lunch",
		Subtitle:  strPtr("daily"),
		BgImageID: strPtr("bg-1"),
		Sections: []entities.Section{
			{
				ID: 10, VersionID: 7, Name: "Starters", Position: 1,
				Products: []entities.Product{
					{ID: 100, SectionID: 10, Name: "Soup", Price: 500, ImageID: "img-100"},
					{ID: 101, SectionID: 10, Name: "Salad", Price: 700, ImageID: "img-101"},
				},
			},
			{
				ID: 11, VersionID: 7, Name: "Mains", Position: 2,
				Products: []entities.Product{
					{ID: 110, SectionID: 11, Name: "Steak", Price: 2500, ImageID: "img-110"},
				},
			},
		},
	}
}

func assertUnsaved(t *testing.T, v *entities.MenuVersion) {
	t.Helper()
	assert.Zero(t, v.ID)
	for _, section := range v.Sections {
		assert.Zero(t, section.ID)
		assert.Zero(t, section.VersionID)
		for _, product := range section.Products {
			assert.Zero(t, product.ID)
			assert.Zero(t, product.SectionID)
		}
	}
}

func TestCloneVersion_DoesNotAliasDraft(t *testing.T) {
	draft := draftFixture()
	next := cloneVersion(draft)

	assertUnsaved(t, next)
	assert.Equal(t, ImageIDsOf(draft), ImageIDsOf(next))

	*next.Subtitle = "changed"
	next.Sections[0].Products[0].Name = "changed"
	assert.Equal(t, "daily", *draft.Subtitle)
	assert.Equal(t, "Soup", draft.Sections[0].Products[0].Name)
}

func TestResolveBackground(t *testing.T) {
	assert.Nil(t, resolveBackground(strPtr("bg-1"), true, strPtr("bg-2")))
	assert.Equal(t, "bg-2", *resolveBackground(strPtr("bg-1"), false, strPtr("bg-2")))
	assert.Equal(t, "bg-1", *resolveBackground(strPtr("bg-1"), false, nil))
	assert.Nil(t, resolveBackground(nil, false, nil))
}

func TestWithProperties(t *testing.T) {
	draft := draftFixture()
	next := withProperties(draft, "Dinner", nil, strPtr("bg-2"))

	assertUnsaved(t, next)
	assert.Equal(t, "Dinner", next.Title)
	assert.Nil(t, next.Subtitle)
	assert.Equal(t, "bg-2", *next.BgImageID)
	require.Len(t, next.Sections, 2)
	assert.Len(t, next.Sections[0].Products, 2)
	assert.Equal(t, "Lunch", draft.Title)
}

func TestWithNewProduct(t *testing.T) {
	draft := draftFixture()

	next, err := withNewProduct(draft, 11, entities.Product{Name: "Fish", Price: 1800, ImageID: "img-new"})
	require.NoError(t, err)

	assertUnsaved(t, next)
	require.Len(t, next.Sections[1].Products, 2)
	assert.Equal(t, "Fish", next.Sections[1].Products[1].Name)
	assert.Len(t, next.Sections[0].Products, 2)
	assert.Len(t, draft.Sections[1].Products, 1)

	_, err = withNewProduct(draft, 999, entities.Product{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestWithEditedProduct(t *testing.T) {
	draft := draftFixture()

	next, err := withEditedProduct(draft, 101, entities.Product{Name: "Caesar", Price: 900, ImageID: "img-101"})
	require.NoError(t, err)

	assertUnsaved(t, next)
	edited := next.Sections[0].Products[1]
	assert.Equal(t, "Caesar", edited.Name)
	assert.Equal(t, 900, edited.Price)
	assert.Equal(t, "img-101", edited.ImageID)

	sibling := next.Sections[0].Products[0]
	assert.Equal(t, "Soup", sibling.Name)
	assert.Equal(t, "img-100", sibling.ImageID)

	_, err = withEditedProduct(draft, 999, entities.Product{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestWithoutProduct(t *testing.T) {
	draft := draftFixture()

	next, err := withoutProduct(draft, 100)
	require.NoError(t, err)

	assertUnsaved(t, next)
	require.Len(t, next.Sections[0].Products, 1)
	assert.Equal(t, "Salad", next.Sections[0].Products[0].Name)
	assert.Len(t, next.Sections[1].Products, 1)
	assert.False(t, ImageIDsOf(next).Has("img-100"))

	_, err = withoutProduct(draft, 999)
	assert.ErrorIs(t, err, domain.ErrProductNotInVersion)
	assert.ErrorIs(t, err, domain.ErrInternalServer)
}

func TestWithSections(t *testing.T) {
	draft := draftFixture()
	mains := uint(11)

	next := withSections(draft, []domain.SectionInput{
		{ID: &mains, Name: "Main courses"},
		{ID: nil, Name: "Desserts"},
	})

	assertUnsaved(t, next)
	require.Len(t, next.Sections, 2)

	assert.Equal(t, "Main courses", next.Sections[0].Name)
	assert.Equal(t, 1, next.Sections[0].Position)
	require.Len(t, next.Sections[0].Products, 1)
	assert.Equal(t, "Steak", next.Sections[0].Products[0].Name)

	assert.Equal(t, "Desserts", next.Sections[1].Name)
	assert.Equal(t, 2, next.Sections[1].Position)
	assert.Empty(t, next.Sections[1].Products)

	// Starters was dropped along with its products.
	orphans := OrphanedImages(draft, next, nil)
	assert.Equal(t, []string{"img-100", "img-101"}, orphans.Sorted())
}

func TestPublishStatus(t *testing.T) {
	assert.Equal(t, domain.PublishStatusNoSections, publishStatus(&entities.MenuVersion{}))

	draft := draftFixture()
	assert.Equal(t, domain.PublishStatusPublished, publishStatus(draft))

	draft.Sections = append(draft.Sections, entities.Section{Name: "Empty", Position: 3})
	assert.Equal(t, domain.PublishStatusEmptySection, publishStatus(draft))
}
