package socialimages

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/root4loot/goutils/log"
)

// PageResult is the outcome of rendering a single page.
type PageResult struct {
	Index int    // position in the page list
	Page  Page   // page descriptor
	Path  string // output file
	Image Image  // written image, nil on error
	Error error
}

// Renderer captures one image per page on a single document, in order.
type Renderer struct {
	Config   Config
	Document Document
	Settler  Settler
	seen     []Image
	seenIdx  []int
}

// NewRenderer returns a Renderer on doc that settles for cfg.SettleDelay.
func NewRenderer(cfg Config, doc Document) *Renderer {
	return &Renderer{
		Config:   cfg,
		Document: doc,
		Settler:  FixedDelay(cfg.SettleDelay),
	}
}

// ImagePath returns where the image of p is written.
func (r *Renderer) ImagePath(p Page) string {
	return filepath.Join(r.Config.PreviewPath, p.ImgName+".png")
}

// Run renders pages sequentially. It stops at the first failing page unless
// Config.ContinueOnError is set, in which case every page is attempted and the
// failures are joined into the returned error.
func (r *Renderer) Run(ctx context.Context, pages []Page) ([]PageResult, error) {
	results := make([]PageResult, 0, len(pages))
	var errs []error

	for i, p := range pages {
		result := r.renderPage(ctx, i, p)
		results = append(results, result)

		if result.Error == nil {
			continue
		}

		err := fmt.Errorf("page %d (%s): %w", i, p.ImgName, result.Error)
		if !r.Config.ContinueOnError || ctx.Err() != nil {
			return results, err
		}
		log.Errorf("%v", err)
		errs = append(errs, err)
	}

	return results, errors.Join(errs...)
}

func (r *Renderer) renderPage(ctx context.Context, i int, p Page) PageResult {
	result := PageResult{Index: i, Page: p, Path: r.ImagePath(p)}

	if p.ImgName == "" {
		log.Warnf("Page %d has no imgName, writing %s", i, result.Path)
	}

	if err := r.mutate(ctx, p); err != nil {
		result.Error = err
		return result
	}

	if err := r.Settler.Settle(ctx); err != nil {
		result.Error = err
		return result
	}

	log.Infof("Image: %s.png", p.ImgName)

	img, err := r.Document.Capture(ctx)
	if err != nil {
		result.Error = err
		return result
	}

	if r.Config.Imprint != "" {
		if img, err = Image(img).Imprint(r.Config.Imprint); err != nil {
			result.Error = err
			return result
		}
	}

	if err := Image(img).Save(result.Path); err != nil {
		result.Error = fmt.Errorf("error saving %s: %w", result.Path, err)
		return result
	}

	r.checkDuplicate(i, img)
	result.Image = img
	return result
}

// mutate replaces every per-page part of the document, so nothing from the
// previous page survives.
func (r *Renderer) mutate(ctx context.Context, p Page) error {
	if err := r.Document.SetTitle(ctx, p.Title); err != nil {
		return err
	}
	if err := r.Document.SetBackground(ctx, p.Cover); err != nil {
		return err
	}
	return r.Document.SetFeatureList(ctx, p.BhkSpecs)
}

func (r *Renderer) checkDuplicate(i int, img Image) {
	if r.Config.DuplicateThreshold <= 0 {
		return
	}
	if j := img.SimilarTo(r.seen, r.Config.DuplicateThreshold); j >= 0 {
		log.Warnf("Image of page %d is similar to page %d", i, r.seenIdx[j])
	}
	r.seen = append(r.seen, img)
	r.seenIdx = append(r.seenIdx, i)
}

// Generate runs the whole pipeline for cfg: it assembles the template, loads
// the pages, opens a browser document and renders every page. The browser is
// closed on every path.
func Generate(ctx context.Context, cfg Config) ([]PageResult, error) {
	html, err := AssembleTemplate(cfg)
	if err != nil {
		return nil, err
	}

	pages, err := LoadPages(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	doc, err := OpenDocument(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Debugf("Error closing browser: %v", err)
		}
	}()

	if err := doc.Load(ctx, html); err != nil {
		return nil, err
	}

	return NewRenderer(cfg, doc).Run(ctx, pages)
}
