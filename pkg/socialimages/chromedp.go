package socialimages

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/root4loot/goutils/log"
)

type chromedpDocument struct {
	ctx         context.Context // chromedp tab context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	width       int
	height      int
}

func openChromedpDocument(ctx context.Context, cfg Config, bin string) (Document, error) {
	// Create custom chromedp options by appending the custom flags to the default options.
	opts := append(chromedp.DefaultExecAllocatorOptions[:], customFlags(bin)...)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	doc := &chromedpDocument{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		width:       cfg.Width,
		height:      cfg.Height,
	}

	// The first Run starts the browser.
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(cfg.Width), int64(cfg.Height), chromedp.EmulateScale(cfg.DeviceScaleFactor)),
		chromedp.Navigate("about:blank"),
	)
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	log.Debug("Browser launched with chromedp")
	return doc, nil
}

// customFlags returns the allocator options added to chromedp's defaults.
func customFlags(bin string) []chromedp.ExecAllocatorOption {
	flags := []chromedp.ExecAllocatorOption{
		chromedp.Flag("headless", true),
		chromedp.NoSandbox,
	}
	if bin != "" {
		flags = append(flags, chromedp.ExecPath(bin))
	}
	return flags
}

func (d *chromedpDocument) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(d.ctx, actions...)
}

func (d *chromedpDocument) Load(ctx context.Context, html string) error {
	err := d.run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("error setting document content: %w", err)
	}

	expr, err := invocation(fontsReadyJS)
	if err != nil {
		return err
	}
	var ready bool
	if err := d.run(ctx, chromedp.Evaluate(expr, &ready, awaitPromise)); err != nil {
		return fmt.Errorf("error waiting for fonts: %w", err)
	}
	return nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func (d *chromedpDocument) eval(ctx context.Context, res interface{}, fn string, args ...interface{}) error {
	expr, err := invocation(fn, args...)
	if err != nil {
		return err
	}
	return d.run(ctx, chromedp.Evaluate(expr, res))
}

func (d *chromedpDocument) SetTitle(ctx context.Context, html string) error {
	if err := d.eval(ctx, nil, setTitleJS, TitleSelector, html); err != nil {
		return fmt.Errorf("error setting title: %w", err)
	}
	return nil
}

func (d *chromedpDocument) SetBackground(ctx context.Context, cover string) error {
	if err := d.eval(ctx, nil, setBackgroundJS, MainSelector, cover); err != nil {
		return fmt.Errorf("error setting background: %w", err)
	}
	return nil
}

func (d *chromedpDocument) SetFeatureList(ctx context.Context, features []Feature) error {
	if features == nil {
		features = []Feature{}
	}

	var n int
	if err := d.eval(ctx, &n, setFeatureListJS, FeatureGridSelector, features); err != nil {
		return fmt.Errorf("error setting feature list: %w", err)
	}

	if n < 0 {
		log.Debugf("No %s element, skipping features", FeatureGridSelector)
	} else {
		log.Debugf("Rendered %d features", n)
	}
	return nil
}

func (d *chromedpDocument) Capture(ctx context.Context) ([]byte, error) {
	var img []byte
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		img, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithClip(&page.Viewport{
				X:      0,
				Y:      0,
				Width:  float64(d.width),
				Height: float64(d.height),
				Scale:  1,
			}).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("error capturing screenshot: %w", err)
	}
	return img, nil
}

// Close closes the tab first, then shuts down the browser process.
func (d *chromedpDocument) Close() error {
	err := chromedp.Cancel(d.ctx)
	d.cancelTab()
	d.cancelAlloc()
	return err
}
