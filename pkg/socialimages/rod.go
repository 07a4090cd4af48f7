package socialimages

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/root4loot/goutils/log"
)

// requestIdle is how long the network must stay quiet after loading the
// document before it counts as idle.
const requestIdle = 500 * time.Millisecond

type rodDocument struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	width    int
	height   int
}

func openRodDocument(ctx context.Context, cfg Config, bin string) (Document, error) {
	if bin == "" {
		bin, _ = launcher.LookPath()
	}

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	doc := &rodDocument{launcher: l, width: cfg.Width, height: cfg.Height}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		doc.Close()
		return nil, fmt.Errorf("error connecting to browser: %w", err)
	}
	doc.browser = browser

	doc.page, err = browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("error opening page: %w", err)
	}

	viewport := &proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.Width,
		Height:            cfg.Height,
		DeviceScaleFactor: cfg.DeviceScaleFactor,
		Mobile:            false,
	}
	if err := doc.page.SetViewport(viewport); err != nil {
		doc.Close()
		return nil, fmt.Errorf("error setting viewport: %w", err)
	}

	log.Debugf("Browser launched at %s", controlURL)
	return doc, nil
}

// Load sets html as the page content and waits for the network to go idle
// and for webfonts to be ready.
func (d *rodDocument) Load(ctx context.Context, html string) error {
	page := d.page.Context(ctx)

	wait := page.WaitRequestIdle(requestIdle, nil, nil, nil)
	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("error setting document content: %w", err)
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("error waiting for document load: %w", err)
	}

	if _, err := page.Evaluate(rod.Eval(fontsReadyJS).ByPromise()); err != nil {
		return fmt.Errorf("error waiting for fonts: %w", err)
	}
	return nil
}

func (d *rodDocument) SetTitle(ctx context.Context, html string) error {
	if _, err := d.page.Context(ctx).Eval(setTitleJS, TitleSelector, html); err != nil {
		return fmt.Errorf("error setting title: %w", err)
	}
	return nil
}

func (d *rodDocument) SetBackground(ctx context.Context, cover string) error {
	if _, err := d.page.Context(ctx).Eval(setBackgroundJS, MainSelector, cover); err != nil {
		return fmt.Errorf("error setting background: %w", err)
	}
	return nil
}

func (d *rodDocument) SetFeatureList(ctx context.Context, features []Feature) error {
	if features == nil {
		features = []Feature{}
	}

	res, err := d.page.Context(ctx).Eval(setFeatureListJS, FeatureGridSelector, features)
	if err != nil {
		return fmt.Errorf("error setting feature list: %w", err)
	}

	if n := res.Value.Int(); n < 0 {
		log.Debugf("No %s element, skipping features", FeatureGridSelector)
	} else {
		log.Debugf("Rendered %d features", n)
	}
	return nil
}

func (d *rodDocument) Capture(ctx context.Context) ([]byte, error) {
	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(d.width),
			Height: float64(d.height),
			Scale:  1,
		},
	}

	img, err := d.page.Context(ctx).Screenshot(false, req)
	if err != nil {
		return nil, fmt.Errorf("error capturing screenshot: %w", err)
	}
	return img, nil
}

// Close closes every open page, then the browser, then cleans up the
// launcher's user data dir.
func (d *rodDocument) Close() error {
	var firstErr error
	if d.browser != nil {
		if pages, err := d.browser.Pages(); err == nil {
			for _, p := range pages {
				if err := p.Close(); err != nil {
					log.Debugf("Could not close page: %v", err)
				}
			}
		}
		firstErr = d.browser.Close()
	}
	if d.launcher != nil {
		d.launcher.Kill()
		d.launcher.Cleanup()
	}
	return firstErr
}
