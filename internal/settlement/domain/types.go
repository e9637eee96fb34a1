package domain

// SplitVariant selects how net revenue is divided between the two partners.
type SplitVariant string

const (
	// SplitPercent: shares are fractions of net revenue in [0,1].
	SplitPercent SplitVariant = "PERCENT"
	// SplitFixed: shares are absolute draw amounts.
	SplitFixed SplitVariant = "FIXED"
	// SplitMix: shares are fixed bases, any surplus above both bases is
	// split evenly as a bonus.
	SplitMix SplitVariant = "MIX"
)

func (v SplitVariant) IsValid() bool {
	return v == SplitPercent || v == SplitFixed || v == SplitMix
}
