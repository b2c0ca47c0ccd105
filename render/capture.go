package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"housing-dashboard/utils"
)

// Capture takes full-page screenshots of the dashboard page with a
// headless Chrome.
type Capture struct {
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// NewCapture creates a Capture. An empty chromeBin searches the usual
// install locations.
func NewCapture(chromeBin string, maxRetries int, logger *utils.Logger) *Capture {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Capture{
		chromeBin: chromeBin,
		timeout:   60 * time.Second,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Screenshot loads the local page at pagePath and writes a PNG of the
// whole page to outPath.
func (c *Capture) Screenshot(ctx context.Context, pagePath, outPath string) error {
	abs, err := filepath.Abs(pagePath)
	if err != nil {
		return fmt.Errorf("capture: resolve %q: %w", pagePath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	c.logger.Info("[capture] Using browser binary: %s", orDefault(c.chromeBin, "chromedp default"))

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.WindowSize(1400, 1000),
	)
	if c.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(c.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	url := "file://" + filepath.ToSlash(abs)
	var buf []byte
	err = c.retry.Do(allocCtx, "dashboard-screenshot", func(ctx context.Context) error {
		var err error
		buf, err = c.shoot(ctx, url, c.timeout)
		return err
	})
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		return fmt.Errorf("capture: write %q: %w", outPath, err)
	}
	c.logger.Info("[capture] Dashboard screenshot saved to %s (%d bytes)", outPath, len(buf))
	return nil
}

// shoot takes one screenshot in a fresh tab context. The timeout is set on
// that tab, so expiring it tears down this attempt's browser only.
func (c *Capture) shoot(allocCtx context.Context, url string, timeout time.Duration) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	runCtx, cancel := context.WithTimeout(tabCtx, timeout)
	defer cancel()

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 90),
	)
	return buf, err
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
