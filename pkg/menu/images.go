package menu

import (
	"context"
	"sort"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/entities"
	"QR-Menu-Backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"
)

// ImageSet is a set of external image keys.
type ImageSet map[string]struct{}

// ImageIDsOf returns every image key referenced by the version: its background and the
// image of each product. A nil version references nothing.
func ImageIDsOf(version *entities.MenuVersion) ImageSet {
	set := ImageSet{}
	if version == nil {
		return set
	}
	if version.BgImageID != nil && *version.BgImageID != "" {
		set.Add(*version.BgImageID)
	}
	for _, section := range version.Sections {
		for _, product := range section.Products {
			if product.ImageID != "" {
				set.Add(product.ImageID)
			}
		}
	}
	return set
}

func (s ImageSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s ImageSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Union adds every key of other to s and returns s.
func (s ImageSet) Union(other ImageSet) ImageSet {
	for id := range other {
		s[id] = struct{}{}
	}
	return s
}

// Minus returns the keys of s that are in none of the others.
func (s ImageSet) Minus(others ...ImageSet) ImageSet {
	out := ImageSet{}
	for id := range s {
		kept := false
		for _, other := range others {
			if other.Has(id) {
				kept = true
				break
			}
		}
		if !kept {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the keys in lexical order.
func (s ImageSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OrphanedImages returns the images of the replaced draft that neither the new version
// nor the surviving public version reference. A nil replaced version orphans nothing.
func OrphanedImages(replaced, next, public *entities.MenuVersion) ImageSet {
	if replaced == nil {
		return ImageSet{}
	}
	return ImageIDsOf(replaced).Minus(ImageIDsOf(next), ImageIDsOf(public))
}

// deleteImages removes every key concurrently and waits for all calls. The first failure
// is returned; deletions that already succeeded are not undone.
func deleteImages(ctx context.Context, store storage.Storage, ids ImageSet) error {
	if len(ids) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, id := range ids.Sorted() {
		id := id
		g.Go(func() error {
			if err := store.DeleteImage(ctx, id); err != nil {
				log.Errorf("failed to delete image %s: %v", id, err)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.NewInternalError("failed to delete images", err)
	}
	return nil
}

// discardUploads is the compensation for a failed commit. Failures are only logged since
// the original error is the one reported.
func discardUploads(ctx context.Context, store storage.Storage, ids []string) {
	for _, id := range ids {
		if err := store.DeleteImage(ctx, id); err != nil {
			log.Warnf("failed to discard uploaded image %s: %v", id, err)
		}
	}
}
