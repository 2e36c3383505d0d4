// Package browserutil owns the shared headless browser used by the
// render fetch path. pages are pooled because chromium startup and tab
// creation dominate the cost of a render; a checked-out page belongs to
// exactly one caller at a time so navigations never interleave.
package browserutil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

type Config struct {
	// path to a chromium binary, downloads a managed one when empty
	Bin string `json:"bin"`
	// run with a visible window, useful for debugging selectors
	Headed bool `json:"headed"`
	// maximum number of concurrently open tabs, defaults to 2
	PoolSize int    `json:"pool_size"`
	ProxyURL string `json:"proxy_url"`
}

type Pool struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	idle     chan *rod.Page
	slots    chan struct{}
}

func NewPool(cfg Config) (*Pool, error) {
	size := cfg.PoolSize
	if size < 1 {
		size = 2
	}

	bin := cfg.Bin
	if bin == "" {
		slog.Info("no browser binary specified, downloading default...")
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			return nil, fmt.Errorf("download browser: %w", err)
		}
		bin = path
	}

	l := launcher.New().
		Headless(!cfg.Headed).
		Bin(bin).
		NoSandbox(true)
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	slog.Info("browser started", "bin", bin, "pool_size", size)

	return &Pool{
		browser:  browser,
		launcher: l,
		idle:     make(chan *rod.Page, size),
		slots:    make(chan struct{}, size),
	}, nil
}

// Acquire returns an idle page, or creates a new one while the pool is
// below capacity. blocks until a page frees up otherwise.
func (p *Pool) Acquire(ctx context.Context) (*rod.Page, error) {
	select {
	case page := <-p.idle:
		return page, nil
	default:
	}

	select {
	case page := <-p.idle:
		return page, nil
	case p.slots <- struct{}{}:
		page, err := p.newPage()
		if err != nil {
			<-p.slots
			return nil, err
		}
		return page, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a page to the pool for reuse.
func (p *Pool) Release(page *rod.Page) {
	select {
	case p.idle <- page:
	default:
		// pool already full, should not happen since capacity matches slots
		page.Close()
		<-p.slots
	}
}

func (p *Pool) newPage() (*rod.Page, error) {
	page, err := stealth.Page(p.browser)
	if err != nil {
		return nil, fmt.Errorf("create stealth page: %w", err)
	}
	if err := blockHeavyResources(page); err != nil {
		page.Close()
		return nil, err
	}
	return page, nil
}

// installed once per page so pooled reuse carries no per-call
// interception state.
func blockHeavyResources(page *rod.Page) error {
	blocked := map[proto.NetworkResourceType]bool{
		proto.NetworkResourceTypeImage:      true,
		proto.NetworkResourceTypeStylesheet: true,
		proto.NetworkResourceTypeFont:       true,
		proto.NetworkResourceTypeMedia:      true,
	}

	router := page.HijackRequests()
	err := router.Add("*", "", func(h *rod.Hijack) {
		if blocked[h.Request.Type()] {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	if err != nil {
		return fmt.Errorf("install request hijack: %w", err)
	}
	go router.Run()
	return nil
}

func (p *Pool) Close() error {
	err := p.browser.Close()
	p.launcher.Cleanup()
	return err
}
