package enums

import "fmt"

// ReactionType is the kind of reaction a user may place on a forum post.
type ReactionType string

const (
	ReactionLike  ReactionType = "LIKE"
	ReactionLove  ReactionType = "LOVE"
	ReactionWow   ReactionType = "WOW"
	ReactionSad   ReactionType = "SAD"
	ReactionAngry ReactionType = "ANGRY"
)

var validReactionTypes = []ReactionType{
	ReactionLike,
	ReactionLove,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

// ReactionTypes returns all known reaction kinds in display order.
func ReactionTypes() []ReactionType {
	out := make([]ReactionType, len(validReactionTypes))
	copy(out, validReactionTypes)
	return out
}

// String implements fmt.Stringer.
func (t ReactionType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ReactionType.
func (t ReactionType) IsValid() bool {
	for _, candidate := range validReactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseReactionType converts raw input into a ReactionType.
func ParseReactionType(value string) (ReactionType, error) {
	for _, candidate := range validReactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reaction type %q", value)
}
