package variant

import (
	"testing"

	"tireshop/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func details(size, load, speed string, xl, rf bool) *domain.TireDetails {
	return &domain.TireDetails{
		ID:         uuid.New(),
		Brand:      domain.TireBrand{ID: uuid.New(), Name: "Michelin"},
		Model:      domain.TireModel{ID: uuid.New(), Name: "Pilot Sport"},
		Size:       size,
		SpeedIndex: domain.TireSpeedIndex{ID: uuid.New(), Code: speed},
		LoadIndex:  domain.TireLoadIndex{ID: uuid.New(), Code: load},
		IsXL:       xl,
		IsRunFlat:  rf,
	}
}

func TestDetailKeyFixedFormat(t *testing.T) {
	d := details("275/35R19", "100", "Y", true, false)
	want := "275/35R19|100|Y|1|0"
	if got := DetailKey(d); got != want {
		t.Errorf("DetailKey = %q, want %q", got, want)
	}
}

func TestDetailKeyNilDetails(t *testing.T) {
	if got := DetailKey(nil); got != "" {
		t.Errorf("DetailKey(nil) = %q, want empty", got)
	}
}

func TestDetailLabel(t *testing.T) {
	tests := []struct {
		name string
		d    *domain.TireDetails
		want string
	}{
		{"plain", details("205/55R16", "91", "V", false, false), "205/55R16 91V"},
		{"xl", details("225/45R17", "94", "W", true, false), "225/45R17 94W XL"},
		{"runflat", details("225/45R17", "94", "W", false, true), "225/45R17 94W RunFlat"},
		{"both", details("275/35R19", "100", "Y", true, true), "275/35R19 100Y XL RunFlat"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetailLabel(tt.d); got != tt.want {
				t.Errorf("DetailLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

// Identical technical specs always produce identical keys regardless of
// brand and model, and any differing field produces a different key.
func TestProperty_DetailKeyPartitionsBySpecs(t *testing.T) {
	properties := gopter.NewProperties(nil)

	specGen := gopter.CombineGens(
		gen.RegexMatch(`[12][0-9]{2}/[0-9]{2}R[12][0-9]`),
		gen.RegexMatch(`[0-9]{2,3}`),
		gen.RegexMatch(`[A-Z]`),
		gen.Bool(),
		gen.Bool(),
	)

	properties.Property("same specs give same key independent of brand/model", prop.ForAll(
		func(spec []interface{}) bool {
			size, load, speed := spec[0].(string), spec[1].(string), spec[2].(string)
			xl, rf := spec[3].(bool), spec[4].(bool)

			p := details(size, load, speed, xl, rf)
			q := details(size, load, speed, xl, rf)
			return DetailKey(p) == DetailKey(q)
		},
		specGen,
	))

	properties.Property("flipping the XL flag changes the key", prop.ForAll(
		func(spec []interface{}) bool {
			size, load, speed := spec[0].(string), spec[1].(string), spec[2].(string)
			xl, rf := spec[3].(bool), spec[4].(bool)

			p := details(size, load, speed, xl, rf)
			q := details(size, load, speed, !xl, rf)
			return DetailKey(p) != DetailKey(q)
		},
		specGen,
	))

	properties.Property("changing the size changes the key", prop.ForAll(
		func(spec []interface{}, otherSize string) bool {
			size, load, speed := spec[0].(string), spec[1].(string), spec[2].(string)
			xl, rf := spec[3].(bool), spec[4].(bool)
			if otherSize == size {
				return true
			}

			p := details(size, load, speed, xl, rf)
			q := details(otherSize, load, speed, xl, rf)
			return DetailKey(p) != DetailKey(q)
		},
		specGen,
		gen.RegexMatch(`[12][0-9]{2}/[0-9]{2}R[12][0-9]`),
	))

	properties.TestingRun(t)
}
