package display

import "testing"

func TestSupported_LargestFirst(t *testing.T) {
	got := Supported()
	want := []string{"8k", "4k", "2k", "hd"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestGet(t *testing.T) {
	tier, err := Get("4k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	res := tier.GetResolution()
	if res.Width != 3840 || res.Height != 2160 || res.Code != "4k" {
		t.Errorf("unexpected resolution %+v", res)
	}
	if tier.IsFallback() {
		t.Error("4k should be a grid tier")
	}

	hd, err := Get("hd")
	if err != nil {
		t.Fatalf("Get hd: %v", err)
	}
	if !hd.IsFallback() {
		t.Error("hd should be the fallback tier")
	}

	if _, err := Get("16k"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestResolve(t *testing.T) {
	res, err := Resolve([]string{"2k", "8k"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res) != 2 || res[0].Code != "2k" || res[1].Width != 7680 {
		t.Errorf("unexpected resolutions %+v", res)
	}

	if _, err := Resolve([]string{"2k", "nope"}); err == nil {
		t.Error("expected error for unknown code")
	}
}
