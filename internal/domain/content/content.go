package content

import (
	"time"

	"github.com/google/uuid"

	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
)

// ContentType is the closed set of published content kinds.
type ContentType string

const (
	TypeVideo   ContentType = "video"
	TypeArticle ContentType = "article"
	TypeAudio   ContentType = "audio"
	TypeOther   ContentType = "other"
)

// ParseContentType validates a caller-supplied content type string.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case TypeVideo, TypeArticle, TypeAudio, TypeOther:
		return ContentType(s), nil
	default:
		return "", platformdomain.NewValidationError("unknown content type: " + s)
	}
}

const (
	maxContentIDLen   = 64
	maxContentHashLen = 64
)

// Content is an immutable record proving that a provider published a specific
// content hash at a given time. No field is ever mutated after creation.
type Content struct {
	id          uuid.UUID
	providerID  uuid.UUID
	contentID   string
	contentHash string
	contentType ContentType
	publishedAt time.Time
}

// NewContent creates a published-content record stamped at now.
func NewContent(providerID uuid.UUID, contentID, contentHash string, contentType ContentType, now time.Time) (*Content, error) {
	if contentID == "" || len(contentID) > maxContentIDLen {
		return nil, platformdomain.NewValidationError("content id must be 1-64 characters")
	}
	if contentHash == "" || len(contentHash) > maxContentHashLen {
		return nil, platformdomain.NewValidationError("content hash must be 1-64 characters")
	}

	return &Content{
		id:          uuid.New(),
		providerID:  providerID,
		contentID:   contentID,
		contentHash: contentHash,
		contentType: contentType,
		publishedAt: now,
	}, nil
}

// Reconstruct rebuilds a Content record from persistence.
func Reconstruct(id, providerID uuid.UUID, contentID, contentHash string, contentType ContentType, publishedAt time.Time) *Content {
	return &Content{
		id: id, providerID: providerID,
		contentID: contentID, contentHash: contentHash,
		contentType: contentType, publishedAt: publishedAt,
	}
}

// Getters.
func (c *Content) ID() uuid.UUID            { return c.id }
func (c *Content) ProviderID() uuid.UUID    { return c.providerID }
func (c *Content) ContentID() string        { return c.contentID }
func (c *Content) ContentHash() string      { return c.contentHash }
func (c *Content) ContentType() ContentType { return c.contentType }
func (c *Content) PublishedAt() time.Time   { return c.publishedAt }
