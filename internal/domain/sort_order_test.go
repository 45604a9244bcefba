package domain

import "testing"

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in   string
		want SortOrder
	}{
		{"now_playing", NowPlaying},
		{"Now Playing", NowPlaying},
		{"popular", Popular},
		{"  TOP_RATED ", TopRated},
		{"top-rated", TopRated},
		{"upcoming", Upcoming},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if err != nil {
				t.Fatalf("ParseSortOrder(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSortOrder(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSortOrder_UnknownFallsBackToDefault(t *testing.T) {
	got, err := ParseSortOrder("trending")
	if err == nil {
		t.Fatalf("ParseSortOrder returned nil error, want error")
	}
	if got != DefaultSortOrder {
		t.Fatalf("ParseSortOrder = %v, want %v", got, DefaultSortOrder)
	}
}

func TestSortOrder_KeyRoundTrip(t *testing.T) {
	for _, o := range AllSortOrders() {
		text, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) returned error: %v", o, err)
		}
		var back SortOrder
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) returned error: %v", text, err)
		}
		if back != o {
			t.Fatalf("round trip %v -> %q -> %v", o, text, back)
		}
	}
}

func TestSortOrder_InvalidMarshalFails(t *testing.T) {
	if _, err := SortOrder(42).MarshalText(); err == nil {
		t.Fatalf("MarshalText returned nil error for invalid order")
	}
	if SortOrder(42).String() != "Unknown" {
		t.Fatalf("String() = %q, want Unknown", SortOrder(42).String())
	}
}
