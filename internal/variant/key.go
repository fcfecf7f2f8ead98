package variant

import (
	"strings"

	"tireshop/internal/domain"
)

// keySeparator joins the detail key fields. Field order is fixed (size, load
// index code, speed index code, XL flag, RunFlat flag) so that products with
// identical technical specs always produce identical keys.
const keySeparator = "|"

// DetailKey encodes the non-brand/model attributes of a tire into its
// canonical key. Two tires with the same specs share a key; any differing
// field yields a different key.
func DetailKey(d *domain.TireDetails) string {
	if d == nil {
		return ""
	}
	return strings.Join([]string{
		d.Size,
		d.LoadIndex.Code,
		d.SpeedIndex.Code,
		flag(d.IsXL),
		flag(d.IsRunFlat),
	}, keySeparator)
}

// DetailLabel renders the human-readable form of a tire's technical specs,
// e.g. "275/35R19 100Y XL RunFlat".
func DetailLabel(d *domain.TireDetails) string {
	if d == nil {
		return ""
	}
	parts := []string{d.Size, d.LoadIndex.Code + d.SpeedIndex.Code}
	if d.IsXL {
		parts = append(parts, "XL")
	}
	if d.IsRunFlat {
		parts = append(parts, "RunFlat")
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
