package entries

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrConflict is returned when an entry with the same id already exists.
	ErrConflict = errors.New("entry already exists")
	// ErrInvalidInput is returned for structurally unusable input such as an empty id.
	ErrInvalidInput = errors.New("invalid entry input")
	// ErrInvalidCover is returned when a cover type and value do not agree.
	ErrInvalidCover = errors.New("invalid cover")
)

// CoverType selects how an entry's cover is drawn.
type CoverType string

const (
	CoverNone  CoverType = ""
	CoverColor CoverType = "color"
	CoverImage CoverType = "image"
)

// Entry is a single note record. Timestamps are milliseconds since epoch.
type Entry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsFavorite bool      `json:"isFavorite"`
	CoverType  CoverType `json:"coverType,omitempty"`
	CoverValue string    `json:"coverValue,omitempty"`
	CreatedAt  int64     `json:"createdAt"`
	UpdatedAt  int64     `json:"updatedAt"`
}

// HasCover reports whether the entry carries a cover.
func (e Entry) HasCover() bool {
	return e.CoverType != CoverNone && e.CoverValue != ""
}

// DisplayTitle returns the title or a placeholder derived from the id.
func (e Entry) DisplayTitle() string {
	if strings.TrimSpace(e.Title) != "" {
		return e.Title
	}
	short := []rune(e.ID)
	if len(short) > 4 {
		short = short[:4]
	}
	return fmt.Sprintf("Untitled Entry (%s...)", string(short))
}

// Input carries the caller-supplied fields of a new entry.
type Input struct {
	ID         string
	Title      string
	Content    string
	IsFavorite bool
}

// Patch is a full or partial update keyed by ID. Title and Content are always
// applied; nil pointer fields leave the existing value in place.
type Patch struct {
	ID         string
	Title      string
	Content    string
	IsFavorite *bool
	CoverType  *CoverType
	CoverValue *string
	CreatedAt  *int64
}

var colorToken = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateCover checks that value is consistent with typ. A CoverNone type
// accepts any value; callers drop it through NormalizeCover.
func ValidateCover(typ CoverType, value string) error {
	switch typ {
	case CoverNone:
		return nil
	case CoverColor:
		if !colorToken.MatchString(strings.TrimSpace(value)) {
			return fmt.Errorf("%w: %q is not a color token", ErrInvalidCover, value)
		}
		return nil
	case CoverImage:
		if !strings.HasPrefix(value, "data:image/") {
			return fmt.Errorf("%w: image cover must be an image data URL", ErrInvalidCover)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown cover type %q", ErrInvalidCover, string(typ))
	}
}

// NormalizeCover validates and canonicalizes a cover pair.
func NormalizeCover(typ CoverType, value string) (CoverType, string, error) {
	if err := ValidateCover(typ, value); err != nil {
		return typ, value, err
	}
	switch typ {
	case CoverNone:
		return CoverNone, "", nil
	case CoverColor:
		return typ, strings.TrimSpace(value), nil
	default:
		return typ, value, nil
	}
}
