package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/loader"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

// WebScriptLoader loads scripts from web pages. Script sites serve HTML pages
// with the script in a <pre> block; readability strips the page chrome. Any
// other content type is returned as is.
type WebScriptLoader struct {
	client *http.Client
	group  singleflight.Group
}

// NewWebScriptLoader creates a web loader. A nil client selects http.DefaultClient.
func NewWebScriptLoader(client *http.Client) *WebScriptLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebScriptLoader{client: client}
}

// GetFileText fetches the script URL and extracts its readable text.
func (l *WebScriptLoader) GetFileText(ctx context.Context, file loader.ScriptFile) ([]byte, error) {
	return loader.SharedRead(ctx, &l.group, loader.FlightKey(file), func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.FilePath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch url %q: status %d", file.FilePath, resp.StatusCode)
		}

		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			u, err := url.Parse(file.FilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to parse url: %w", err)
			}
			article, err := readability.FromReader(resp.Body, u)
			if err != nil {
				return nil, fmt.Errorf("failed to parse html: %w", err)
			}
			var builder strings.Builder
			if err := article.RenderText(&builder); err != nil {
				return nil, fmt.Errorf("failed to render article text: %w", err)
			}

			return []byte(builder.String()), nil
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return data, nil
	})
}
