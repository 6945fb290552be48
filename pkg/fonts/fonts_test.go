package fonts

import "testing"

func TestRegular(t *testing.T) {
	f, err := Regular()
	if err != nil {
		t.Fatalf("Regular() error: %v", err)
	}
	if f == nil {
		t.Fatal("Regular() returned nil font")
	}

	again, _ := Regular()
	if again != f {
		t.Error("Regular() should return the cached font")
	}
	if len(RegularTTF()) == 0 {
		t.Error("RegularTTF() should not be empty")
	}
}

func TestFacesCachesBySize(t *testing.T) {
	f, err := Regular()
	if err != nil {
		t.Fatal(err)
	}
	faces := NewFaces(f)
	defer faces.Close()

	a := faces.Face(22)
	b := faces.Face(22)
	c := faces.Face(100)
	if a != b {
		t.Error("Face(22) should be cached")
	}
	if a == c {
		t.Error("different sizes should yield different faces")
	}

	small := a.Metrics().Height
	large := c.Metrics().Height
	if large <= small {
		t.Errorf("100px height %v should exceed 22px height %v", large, small)
	}
}
