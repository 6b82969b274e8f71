// Package feed publishes the school news as an RSS 2.0 feed.
package feed

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"school-cms/internal/domain/entity"
	"school-cms/internal/observability/logging"
)

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        guid   `xml:"guid"`
	PubDate     string `xml:"pubDate,omitempty"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Handler renders the published news of the site store.
type Handler struct {
	News        func() []entity.NewsArticle
	Title       string
	Description string
	// SiteURL is the public site root, e.g. "https://school.example".
	SiteURL string
	Now     func() time.Time
}

// ServeHTTP ニュース RSS
// @Summary      ニュース RSS フィード
// @Description  公開済みニュースを RSS 2.0 で返します (一覧の順)
// @Tags         feed
// @Produce      xml
// @Success      200 {string} string "RSS 2.0"
// @Router       /feed/news.xml [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	base := strings.TrimRight(h.SiteURL, "/")

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:         h.Title,
			Link:          base + "/news",
			Description:   h.Description,
			Language:      "en",
			LastBuildDate: now().UTC().Format(time.RFC1123Z),
			Items:         []item{},
		},
	}
	for _, n := range h.News() {
		it := item{
			Title:       n.Title,
			Link:        base + "/news#" + n.ID,
			Description: n.Content,
			GUID:        guid{Value: n.ID},
		}
		if t, err := time.Parse(entity.DateLayout, n.PublishDate); err == nil {
			it.PubDate = t.Format(time.RFC1123Z)
		}
		doc.Channel.Items = append(doc.Channel.Items, it)
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		logging.FromContext(r.Context()).Error("failed to encode RSS feed", slog.Any("error", err))
	}
}
