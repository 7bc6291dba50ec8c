package firmware

import "testing"

func TestPublish(t *testing.T) {
	var st State
	for _, p := range []Position{Hundreds, Tens, Units} {
		if got := st.Encoded(p); got != 0 {
			t.Fatalf("Encoded(%d) before Publish = %#02x, want 0", p, got)
		}
	}

	st.Counter = 98
	st.Publish()
	if st.Digits != [3]uint8{0, 9, 8} {
		t.Fatalf("Digits = %v, want [0 9 8]", st.Digits)
	}
	want := [3]uint8{0x3F, 0x6F, 0x7F}
	for p, w := range want {
		if got := st.Encoded(Position(p)); got != w {
			t.Fatalf("Encoded(%d) = %#02x, want %#02x", p, got, w)
		}
	}
	if got := st.Encoded(Units + 1); got != 0 {
		t.Fatalf("Encoded(out of range) = %#02x, want 0", got)
	}
}

func TestPublishOrder(t *testing.T) {
	st := State{Counter: 123}
	var order []Position
	st.publish(func(pos Position, pattern uint8) {
		order = append(order, pos)
		st.store(pos, pattern)
	})

	want := []Position{Units, Tens, Hundreds}
	if len(order) != len(want) {
		t.Fatalf("stores = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("stores = %v, want %v", order, want)
		}
	}
	if got := st.Encoded(Hundreds); got != Encode(1) {
		t.Fatalf("Encoded(hundreds) = %#02x, want %#02x", got, Encode(1))
	}
}
