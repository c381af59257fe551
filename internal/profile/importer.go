package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"

	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/internal/observe"
	"github.com/duetsim/duet/pkg/retry"
)

const maxImportBody = 1 << 20

// Importer builds a draft profile from a public web page. The page text is
// mined with the same lexical cues the live observer uses.
type Importer struct {
	client  *http.Client
	retrier *retry.Retrier
	policy  *bluemonday.Policy
}

func NewImporter() *Importer {
	return &Importer{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		retrier: retry.NewDefaultRetrier(),
		policy:  bluemonday.UGCPolicy(),
	}
}

// FromURL fetches the page and returns a draft profile for name. The caller
// usually merges the draft into a hand-written profile.
func (i *Importer) FromURL(ctx context.Context, name, url string) (Profile, error) {
	raw, err := i.fetch(ctx, url)
	if err != nil {
		return Profile{}, err
	}

	sanitized := i.policy.Sanitize(raw)
	text, err := html2text.FromString(sanitized, html2text.Options{OmitLinks: true})
	if err != nil {
		return Profile{}, fmt.Errorf("failed to extract text: %w", err)
	}

	tags := observe.Scan(text)
	return Profile{
		Name:    name,
		Hobbies: tags.Hobbies,
		Personality: Personality{
			Traits: tags.PersonalityTraits,
		},
	}, nil
}

func (i *Importer) fetch(ctx context.Context, url string) (string, error) {
	var body string
	err := i.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", core.AppUserAgent)

		resp, err := i.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		// Retry server-side trouble, give up on anything client-side.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return retry.Unrecoverable(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode))
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxImportBody))
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		body = string(data)
		return nil
	})
	return body, err
}
