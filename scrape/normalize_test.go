package scrape

import (
	"errors"
	"testing"

	"github.com/tkeeble/folio"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"250.00", "250.00"},
		{"1,234.56", "1234.56"},
		{"  8,785.50  ", "8785.50"},
		{"61.23%", "61.23"},
		{"0.005", "0.005"},
	}
	for _, tt := range tests {
		got, err := DefaultFormat.Price(tt.in)
		if err != nil {
			t.Errorf("Price(%q) error = %v", tt.in, err)
			continue
		}
		if got.String() != mustDec(tt.want).String() {
			t.Errorf("Price(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPrice_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "--", "n/a", "12..3"} {
		_, err := DefaultFormat.Price(in)
		if err == nil {
			t.Errorf("Price(%q) = nil error, want ParseError", in)
			continue
		}
		var perr *folio.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Price(%q) error = %v, want ParseError", in, err)
		}
	}
}

func TestPrice_EuropeanFormat(t *testing.T) {
	f := NumberFormat{Grouping: '.', Decimal: ','}
	got, err := f.Price("1.234,56")
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	if want := mustDec("1234.56"); !got.Equal(want) {
		t.Errorf("Price(\"1.234,56\") = %s, want %s", got, want)
	}
}

func TestMetric(t *testing.T) {
	got, ok, err := DefaultFormat.Metric("61.23%")
	if err != nil || !ok {
		t.Fatalf("Metric() = _, %t, %v, want a value", ok, err)
	}
	if want := mustDec("61.23"); !got.Equal(want) {
		t.Errorf("Metric() = %s, want %s", got, want)
	}
}

func TestMetric_Absent(t *testing.T) {
	for _, in := range []string{"--", "", "  "} {
		_, ok, err := DefaultFormat.Metric(in)
		if err != nil {
			t.Errorf("Metric(%q) error = %v, want nil: absence is not a failure", in, err)
		}
		if ok {
			t.Errorf("Metric(%q) ok = true, want false", in)
		}
	}
}

func TestMetric_Malformed(t *testing.T) {
	_, ok, err := DefaultFormat.Metric("garbage")
	if ok {
		t.Error("Metric(\"garbage\") ok = true")
	}
	var perr *folio.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Metric(\"garbage\") error = %v, want ParseError", err)
	}
}
