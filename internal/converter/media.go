package converter

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/util"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// MediaKind is the classification of a [media] URL.
type MediaKind string

const (
	MediaYouTube   MediaKind = "youtube"
	MediaTwitter   MediaKind = "twitter"
	MediaInstagram MediaKind = "instagram"
	MediaSteam     MediaKind = "steam"
	MediaLink      MediaKind = "link"
)

var (
	youtubeIDRe     = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
	tweetPathRe     = regexp.MustCompile(`^/[A-Za-z0-9_]{1,15}/status(?:es)?/(\d+)`)
	instagramPathRe = regexp.MustCompile(`^/(?:[A-Za-z0-9_.]+/)?(p|reel|tv)/([A-Za-z0-9_-]+)`)
	steamAppPathRe  = regexp.MustCompile(`^/app/(\d+)`)
)

// Media is a classified media URL.
type Media struct {
	Kind MediaKind
	URL  *url.URL
	// ID is the video id, status id, post shortcode or app id.
	ID     string
	Domain string
}

// ClassifyMedia 根据 URL 形态判断媒体类型。无法解析的 URL 返回 nil。
func ClassifyMedia(raw string) *Media {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	m := &Media{Kind: MediaLink, URL: u, Domain: displayDomain(host)}

	switch host {
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		id := u.Query().Get("v")
		if id == "" {
			for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
				if strings.HasPrefix(u.Path, prefix) {
					id = strings.SplitN(strings.TrimPrefix(u.Path, prefix), "/", 2)[0]
				}
			}
		}
		if youtubeIDRe.MatchString(id) {
			m.Kind, m.ID = MediaYouTube, id
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); youtubeIDRe.MatchString(id) {
			m.Kind, m.ID = MediaYouTube, id
		}
	case "twitter.com", "x.com", "mobile.twitter.com":
		if sm := tweetPathRe.FindStringSubmatch(u.Path); sm != nil {
			m.Kind, m.ID = MediaTwitter, sm[1]
		}
	case "instagram.com":
		if sm := instagramPathRe.FindStringSubmatch(u.Path); sm != nil {
			m.Kind, m.ID = MediaInstagram, sm[2]
		}
	case "store.steampowered.com":
		if sm := steamAppPathRe.FindStringSubmatch(u.Path); sm != nil {
			m.Kind, m.ID = MediaSteam, sm[1]
		}
	}
	return m
}

// displayDomain returns the registrable domain in Unicode form.
func displayDomain(host string) string {
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domain = host
	}
	if unicode, err := idna.ToUnicode(domain); err == nil {
		return unicode
	}
	return domain
}

func attrURL(raw string) string {
	return escape(bracketEscaper.Replace(string(util.URLEscape([]byte(raw), false))))
}

// 方括号编码后，BBCode 阶段无法在 href/src 内匹配到标签
var bracketEscaper = strings.NewReplacer("[", "%5B", "]", "%5D")

// MediaCard renders the card for a [media] URL. raw is unescaped user
// text.
func MediaCard(raw string) string {
	m := ClassifyMedia(raw)
	if m == nil {
		return `<div class="media-card link-card link-card-invalid">` +
			`<span class="link-card-domain">External link</span>` +
			`<span class="link-card-url">` + escape(raw) + `</span></div>`
	}
	href := attrURL(m.URL.String())
	switch m.Kind {
	case MediaYouTube:
		id := escape(m.ID)
		return `<div class="media-card youtube-lite" data-video-id="` + id + `"` +
			` style="background-image:url('https://i.ytimg.com/vi/` + id + `/hqdefault.jpg')">` +
			`<a class="youtube-lite-link" href="` + href + `" target="_blank" rel="noopener noreferrer">` +
			`<span class="youtube-lite-play" aria-label="Play video"></span></a></div>`
	case MediaTwitter:
		return `<blockquote class="media-card twitter-tweet" data-tweet-id="` + escape(m.ID) + `">` +
			`<a href="` + href + `" target="_blank" rel="noopener noreferrer">View post on X</a></blockquote>`
	case MediaInstagram:
		return `<blockquote class="media-card instagram-media" data-instgrm-permalink="` + href + `">` +
			`<a href="` + href + `" target="_blank" rel="noopener noreferrer">View on Instagram</a></blockquote>`
	case MediaSteam:
		// 由页面脚本异步填充
		return `<div class="media-card steam-card" data-steam-appid="` + escape(m.ID) + `">` +
			`<a href="` + href + `" target="_blank" rel="noopener noreferrer">Steam store page</a></div>`
	}
	return `<a class="media-card link-card" href="` + href + `" target="_blank" rel="noopener noreferrer">` +
		`<span class="link-card-domain">` + escape(m.Domain) + `</span>` +
		`<span class="link-card-url">` + escape(m.URL.String()) + `</span></a>`
}
