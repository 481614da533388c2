package service

import (
	"context"

	"github.com/fusedlens/studio/internal/repository"
	"github.com/fusedlens/studio/internal/uploads"
)

// ReferencedUploads returns the upload URLs still referenced by any
// document, for the orphaned upload sweeper.
func ReferencedUploads(docs *repository.Documents) uploads.ReferencedFunc {
	return func(ctx context.Context) (map[string]struct{}, error) {
		refs := make(map[string]struct{})
		add := func(srcs ...string) {
			for _, s := range srcs {
				if uploads.IsLocal(s) {
					refs[s] = struct{}{}
				}
			}
		}

		photos, err := docs.Photos.Get(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range photos.Photos {
			add(p.Src, p.SrcLarge)
		}

		cols, err := docs.Collections.Get(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cols.Collections {
			add(c.CoverImage)
			for _, p := range c.Photos {
				add(p.Src, p.SrcLarge)
			}
		}

		content, err := docs.Content.Get(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range content.HeroSlides {
			add(s.Image)
		}
		for _, t := range content.Testimonials {
			add(t.Image)
		}
		for _, m := range content.Collaborators {
			add(m.Image)
		}
		add(content.About.Image)
		return refs, nil
	}
}
