package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentType identifies the modality of submitted content.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentURL   ContentType = "url"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
)

// ContentVariant is a tagged union over the supported content modalities.
// Exactly one arm is populated, selected by Type: Text for the text arm,
// URL for the url arm, Media (+MimeType) for image/video/audio.
type ContentVariant struct {
	Type     ContentType
	Text     string
	URL      string
	Media    []byte
	MimeType string
}

// TextContent builds the text arm.
func TextContent(text string) ContentVariant {
	return ContentVariant{Type: ContentText, Text: text}
}

// URLContent builds the url arm.
func URLContent(url string) ContentVariant {
	return ContentVariant{Type: ContentURL, URL: url}
}

// ImageContent builds the image arm.
func ImageContent(data []byte, mimeType string) ContentVariant {
	return ContentVariant{Type: ContentImage, Media: data, MimeType: mimeType}
}

// VideoContent builds the video arm.
func VideoContent(data []byte, mimeType string) ContentVariant {
	return ContentVariant{Type: ContentVideo, Media: data, MimeType: mimeType}
}

// AudioContent builds the audio arm.
func AudioContent(data []byte, mimeType string) ContentVariant {
	return ContentVariant{Type: ContentAudio, Media: data, MimeType: mimeType}
}

// Supported reports whether the variant tag is one of the known modalities.
func (v ContentVariant) Supported() bool {
	switch v.Type {
	case ContentText, ContentURL, ContentImage, ContentVideo, ContentAudio:
		return true
	}
	return false
}

// GenerateID creates a short stable identifier from arbitrary input bytes.
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
