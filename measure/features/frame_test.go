package features

import "testing"

func TestNewFrame_Sizes(t *testing.T) {
	f := NewFrame(512)
	if f.BlockSize() != 512 {
		t.Fatalf("BlockSize() = %d, want 512", f.BlockSize())
	}
	if len(f.Spectrum) != 514 {
		t.Fatalf("len(Spectrum) = %d, want 514", len(f.Spectrum))
	}
	if len(f.MagnitudeSpectrum) != 257 {
		t.Fatalf("len(MagnitudeSpectrum) = %d, want 257", len(f.MagnitudeSpectrum))
	}
	for _, s := range Scopes {
		if got := len(f.ScopeSamples(s)); got != 512 {
			t.Fatalf("%v samples = %d, want 512", s, got)
		}
	}
	f.mustFit(512)
}

func TestNewFrame_InvalidPanics(t *testing.T) {
	for _, n := range []int{0, -2, 7} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewFrame(%d) did not panic", n)
				}
			}()
			NewFrame(n)
		}()
	}
}

func TestFrame_ScopeLevelsAddresses(t *testing.T) {
	f := NewFrame(8)
	want := map[Scope]*Levels{
		ScopeFull: &f.Levels,
		ScopeBass: &f.Bass.Levels,
		ScopeMid:  &f.Mid.Levels,
		ScopeHigh: &f.High.Levels,
	}
	for s, l := range want {
		if f.ScopeLevels(s) != l {
			t.Fatalf("ScopeLevels(%v) returned the wrong record", s)
		}
	}
	if &f.ScopeSamples(ScopeMid)[0] != &f.Mid.Samples[0] {
		t.Fatal("ScopeSamples(mid) is not the mid band buffer")
	}
}

func TestLevels_PtrDistinct(t *testing.T) {
	var l Levels
	seen := map[*float64]Field{}
	for fld := Field(0); fld < numFields; fld++ {
		p := l.Ptr(fld)
		if prev, dup := seen[p]; dup {
			t.Fatalf("%v and %v share storage", prev, fld)
		}
		seen[p] = fld
		*p = float64(fld) + 1
	}
	if l.Peak != float64(FieldPeak)+1 || l.NormalizedRMSFast != float64(FieldNormalizedRMSFast)+1 {
		t.Fatalf("Ptr wrote to the wrong fields: %+v", l)
	}
	if l.Get(FieldRMSSlowMax) != l.RMSSlowMax {
		t.Fatal("Get(FieldRMSSlowMax) mismatch")
	}
}

func TestFieldAndScope_String(t *testing.T) {
	if FieldRMSSlow.String() != "rmsSlow" || FieldNormalizedPeakFast.String() != "normalizedPeakFast" {
		t.Fatalf("field names: %v %v", FieldRMSSlow, FieldNormalizedPeakFast)
	}
	if Field(99).String() != "Field(99)" || Scope(9).String() != "Scope(9)" {
		t.Fatal("unknown values should format numerically")
	}
	if ScopeBass.String() != "bass" || ScopeHigh.String() != "high" {
		t.Fatal("scope names")
	}
}
