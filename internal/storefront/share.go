package storefront

import (
	"context"
	"fmt"

	"storefront/internal/tracking"
	"storefront/pkg/models"
)

// Share channels offered by the widget.
const (
	ChannelFacebook = "facebook"
	ChannelTwitter  = "twitter"
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Channels lists the share buttons in display order.
var Channels = []string{ChannelFacebook, ChannelTwitter, ChannelEmail, ChannelWhatsApp}

// DefaultStoreName appears in share messages when none is configured.
const DefaultStoreName = "Rudderstack Store"

// SocialShare builds share messages and reports shares.
type SocialShare struct {
	Tracker   *tracking.Tracker
	StoreName string
}

// NewSocialShare creates a SocialShare. An empty storeName uses DefaultStoreName.
func NewSocialShare(tr *tracking.Tracker, storeName string) *SocialShare {
	if storeName == "" {
		storeName = DefaultStoreName
	}
	return &SocialShare{Tracker: tr, StoreName: storeName}
}

// Message returns the text placed behind every share button.
func (s *SocialShare) Message(p models.Product, loc tracking.Location) string {
	return fmt.Sprintf("I ♥ %s product on %s!  Here's the link, %s://%s/product/%s",
		p.Name, s.StoreName, shareScheme(loc.Protocol), loc.Host, p.Slug)
}

// shareScheme compares the location protocol against "https" without its
// trailing colon, so a real "https:" protocol still yields "http".
// FIXME: the comparison never matches a real protocol value.
func shareScheme(protocol string) string {
	if protocol != "https" {
		return "http"
	}
	return "https"
}

// Share reports that the shopper shared p through channel.
func (s *SocialShare) Share(ctx context.Context, p models.Product, channel string) error {
	return s.Tracker.TrackProductShared(ctx, p, channel)
}
