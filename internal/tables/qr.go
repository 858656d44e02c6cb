package tables

import (
	"fmt"
	"net/url"
	"strings"

	"cafemenu-backend/internal/config"
)

// LinkBuilder masa id'sinden menü deep-link'i ve QR görsel URL'ini üretir.
// İkisi de saf string kurma işlemidir; network çağrısı yok.
type LinkBuilder struct {
	baseURL      string
	qrServiceURL string
	qrSize       int
}

func NewLinkBuilder(cfg *config.Config) *LinkBuilder {
	return &LinkBuilder{
		baseURL:      strings.TrimRight(cfg.MenuBaseURL, "/"),
		qrServiceURL: cfg.QRServiceURL,
		qrSize:       cfg.QRImageSize,
	}
}

// MenuLink: <base>?table=<id>. id URL-encode edilir; farklı id'ler asla
// aynı linke düşmez.
func (b *LinkBuilder) MenuLink(tableID string) string {
	return fmt.Sprintf("%s?table=%s", b.baseURL, url.QueryEscape(tableID))
}

// QRImageURL menü linkini harici QR render servisinin URL şablonuna sarar.
func (b *LinkBuilder) QRImageURL(tableID string) string {
	return fmt.Sprintf("%s?size=%dx%d&data=%s",
		b.qrServiceURL, b.qrSize, b.qrSize, url.QueryEscape(b.MenuLink(tableID)))
}
