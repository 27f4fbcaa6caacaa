package models

import (
	"path"
	"strings"

	e "github.com/gartstein/efiling/internal/filing/errors"
)

// MaxFilenameLength is the longest attachment filename the registry accepts.
const MaxFilenameLength = 32

// Attachment is a binary document carried inline in a filing.
type Attachment struct {
	Data        []byte      `json:"data" validate:"min=1"`
	Filename    string      `json:"filename" validate:"required,max=32"`
	ContentType ContentType `json:"content_type" validate:"enum"`
	// MediaType is the declared tag of an opaque (ContentTypeOther) payload.
	MediaType    string `json:"media_type,omitempty" validate:"required_if=ContentType 4"`
	Unrecognized []byte `json:"-"`
}

// NewAttachment wraps document bytes already read by the caller.
func NewAttachment(data []byte, filename string, contentType ContentType) (*Attachment, error) {
	if len(data) == 0 {
		return nil, e.InvalidAttachment("data is empty")
	}
	if filename == "" {
		return nil, e.InvalidAttachment("filename is empty")
	}
	if !contentType.IsValid() || contentType == ContentTypeOther {
		return nil, e.InvalidAttachment("unsupported content type " + contentType.String())
	}
	return &Attachment{Data: data, Filename: filename, ContentType: contentType}, nil
}

// NewOpaqueAttachment wraps a payload of a type the registry schema does
// not enumerate; it is carried verbatim with its declared media type.
func NewOpaqueAttachment(data []byte, filename, mediaType string) (*Attachment, error) {
	if len(data) == 0 {
		return nil, e.InvalidAttachment("data is empty")
	}
	if filename == "" {
		return nil, e.InvalidAttachment("filename is empty")
	}
	if mediaType == "" {
		return nil, e.InvalidAttachment("media type is empty")
	}
	return &Attachment{Data: data, Filename: filename, ContentType: ContentTypeOther, MediaType: mediaType}, nil
}

// ExtensionMatches reports whether the filename extension agrees with the
// declared content type. Advisory only; opaque payloads always match.
func (a *Attachment) ExtensionMatches() bool {
	if a == nil {
		return false
	}
	exts, ok := contentTypeExtensions[a.ContentType]
	if !ok {
		return true
	}
	ext := strings.ToLower(path.Ext(a.Filename))
	for _, x := range exts {
		if x == ext {
			return true
		}
	}
	return false
}
