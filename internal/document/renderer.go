package document

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"go.uber.org/zap"
)

// Renderer turns a quotation into PDF bytes
type Renderer interface {
	Render(ctx context.Context, q *Quotation) ([]byte, error)
}

// ChromeRenderer prints the quotation HTML to an A4 PDF with headless Chrome
type ChromeRenderer struct {
	execPath string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewChromeRenderer creates a renderer; an empty ChromePath lets chromedp locate Chrome
func NewChromeRenderer(cfg *config.DocumentConfig, logger *zap.Logger) *ChromeRenderer {
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeRenderer{
		execPath: cfg.ChromePath,
		timeout:  timeout,
		logger:   logger,
	}
}

// Render serves the HTML on a loopback listener and prints it with Chrome
func (r *ChromeRenderer) Render(ctx context.Context, q *Quotation) ([]byte, error) {
	html, err := q.HTML()
	if err != nil {
		return nil, err
	}

	allocCtx := ctx
	if r.execPath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.ExecPath(r.execPath))
		var cancelAlloc context.CancelFunc
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
		defer cancelAlloc()
	}

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to open render listener: %w", err)
	}
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = server.Serve(listener) }()
	defer server.Close()

	url := fmt.Sprintf("http://%s/", listener.Addr().String())

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print quotation: %w", err)
	}

	r.logger.Debug("Quotation rendered",
		zap.String("file_name", q.FileName),
		zap.Int("size", len(pdf)),
	)
	return pdf, nil
}
