package sgp4

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitl(t *testing.T) {
	r := initl(WGS84, OpsImproved, 0.0086731, 11232.987084649969, 1.2713589136764896, 0.07006731262087737)

	tests := []struct {
		name      string
		got, want float64
	}{
		{"no", r.no, 0.07010615621239219},
		{"ainv", r.ainv, 0.9614303648645832},
		{"ao", r.ao, 1.0401169305078577},
		{"con41", r.con41, -0.7389556198424165},
		{"con42", r.con42, 0.5649260330706942},
		{"cosio", r.cosio, 0.2949827001467394},
		{"cosio2", r.cosio2, 0.08701479338586116},
		{"eccsq", r.eccsq, 0.00007522266360999999},
		{"omeosq", r.omeosq, 0.99992477733639},
		{"posq", r.posq, 1.0816804769920354},
		{"rp", r.rp, 1.03109589235787},
		{"rteosq", r.rteosq, 0.9999623879608622},
		{"sinio", r.sinio, 0.9555025937244435},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.got, 1e-12, tt.name)
	}
	assert.InDelta(t, 0.1082901416688955, r.gsto, 1e-9, "gsto")
}

func TestInitlOpsModeOnlyChangesSiderealTime(t *testing.T) {
	imp := initl(WGS72, OpsImproved, 0.0086731, 11232.987084649969, 1.2713589136764896, 0.07006731262087737)
	afspc := initl(WGS72, OpsAFSPC, 0.0086731, 11232.987084649969, 1.2713589136764896, 0.07006731262087737)

	assert.Equal(t, imp.no, afspc.no)
	assert.Equal(t, imp.ao, afspc.ao)
	// both formulas agree to well under a milliradian
	assert.InDelta(t, imp.gsto, afspc.gsto, 1e-4)
}

func TestGSTime(t *testing.T) {
	// J2000.0
	assert.InDelta(t, 4.894961212735792, GSTime(2451545.0), 1e-9)

	for _, jd := range []float64{2433281.5, 2444514.48708465, 2460000.25, 2400000.0} {
		g := GSTime(jd)
		if g < 0 || g >= twoPi {
			t.Errorf("GSTime(%v) = %v, want in [0, 2pi)", jd, g)
		}
	}
}
