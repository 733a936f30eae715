package enums

import "fmt"

// AttachmentKind distinguishes stored attachment payloads.
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindVideo AttachmentKind = "video"
)

var validAttachmentKinds = []AttachmentKind{
	AttachmentKindImage,
	AttachmentKindVideo,
}

// String implements fmt.Stringer.
func (a AttachmentKind) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttachmentKind.
func (a AttachmentKind) IsValid() bool {
	for _, candidate := range validAttachmentKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAttachmentKind converts raw input into an AttachmentKind.
func ParseAttachmentKind(value string) (AttachmentKind, error) {
	for _, candidate := range validAttachmentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attachment kind %q", value)
}
