package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/anveshk/nestmark/internal/config"
	"github.com/anveshk/nestmark/internal/validations"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

// Metadata is what enrichment could recover for a link. Every field may be
// empty; a bookmark is still created when all of them are.
type Metadata struct {
	Title        string
	PreviewImage string
	Favicon      string
}

type Resolver struct {
	Client         *http.Client
	OEmbedEndpoint string
	AvatarEndpoint string
	Logger         *zap.SugaredLogger
}

func NewResolver(cfg config.PreviewConfig, logger *zap.SugaredLogger) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		Client:         &http.Client{Timeout: timeout},
		OEmbedEndpoint: cfg.OEmbedEndpoint,
		AvatarEndpoint: cfg.AvatarEndpoint,
		Logger:         logger,
	}
}

// Resolve fetches page metadata and, for social post links, an author avatar.
// Both lookups run concurrently and are joined before returning. A failure in
// either branch degrades to "no data from that source"; Resolve never returns
// an error because enrichment must not block bookmark creation.
//
// Precedence for the preview image, highest first: the user-supplied value,
// the social avatar, the first generic preview image.
func (rs *Resolver) Resolve(ctx context.Context, link string, userImage string) Metadata {
	var generic Metadata
	var avatar string

	done := make(chan struct{})
	go func() {
		defer close(done)
		generic = rs.fetchGeneric(ctx, link)
	}()

	if IsSocialPostURL(link) {
		avatar = rs.fetchSocialAvatar(ctx, link)
	}
	<-done

	meta := Metadata{
		Title:   generic.Title,
		Favicon: generic.Favicon,
	}
	switch {
	case userImage != "":
		meta.PreviewImage = userImage
	case avatar != "":
		meta.PreviewImage = avatar
	default:
		meta.PreviewImage = generic.PreviewImage
	}
	return meta
}

func (rs *Resolver) fetchGeneric(ctx context.Context, link string) Metadata {
	resp, err := rs.getPage(ctx, link)
	if err != nil {
		rs.Logger.Warnw("link preview fetch failed", "link", link, "error", err)
		return Metadata{}
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL
	article, err := readability.FromReader(resp.Body, finalURL)
	if err != nil {
		rs.Logger.Warnw("link preview parse failed", "link", link, "error", err)
		return Metadata{}
	}

	meta := Metadata{
		Title:   strings.TrimSpace(article.Title),
		Favicon: article.Favicon,
	}
	if article.Image != "" {
		if _, err := url.ParseRequestURI(article.Image); err == nil {
			meta.PreviewImage = article.Image
		}
	}
	if meta.Favicon == "" {
		if host := validations.ExtractHostname(link); host != "" && host != link {
			meta.Favicon = fmt.Sprintf("%s://%s/favicon.ico", finalURL.Scheme, host)
		}
	}
	return meta
}

var postIdRe = regexp.MustCompile(`/status/(\d+)`)

// IsSocialPostURL reports whether the link points at an individual social
// post, the only case where the oEmbed lookup applies.
func IsSocialPostURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(u.Host, "www.")
	if host != "twitter.com" && host != "x.com" {
		return false
	}
	return postIdRe.MatchString(u.Path)
}

type oembedResponse struct {
	AuthorName string `json:"author_name"`
	AuthorURL  string `json:"author_url"`
}

func (rs *Resolver) fetchSocialAvatar(ctx context.Context, link string) string {
	oembedURL := fmt.Sprintf("%s?url=%s&omit_script=true", rs.OEmbedEndpoint, url.QueryEscape(link))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, nil)
	if err != nil {
		rs.Logger.Warnw("oembed request failed", "link", link, "error", err)
		return ""
	}
	resp, err := rs.Client.Do(req)
	if err != nil {
		rs.Logger.Warnw("oembed fetch failed", "link", link, "error", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		rs.Logger.Warnw("oembed returned non-ok status", "link", link, "status", resp.StatusCode)
		return ""
	}

	var data oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		rs.Logger.Warnw("oembed decode failed", "link", link, "error", err)
		return ""
	}
	if data.AuthorURL == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(data.AuthorURL, "/"), "/")
	handle := parts[len(parts)-1]
	if handle == "" {
		return ""
	}
	return rs.AvatarEndpoint + "/" + handle
}

func (rs *Resolver) getPage(ctx context.Context, link string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := rs.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}
