package ingest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/model"
	"github.com/cwbudde/algo-relax/relax/sim"
)

func TestRoundTripSimulated(t *testing.T) {
	p := sim.DefaultPhysics()
	series, err := sim.Series([]float64{120, 100, 140}, model.KindSingleStretched, p, sim.WithNoise(0.001))
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	var in []curve.Raw
	for _, c := range series {
		in = append(in, c.Raw())
	}
	// Uneven lengths exercise the padding.
	in[2].Time = in[2].Time[:300]
	in[2].Modulus = in[2].Modulus[:300]

	var buf bytes.Buffer
	if err := WriteWide(&buf, in); err != nil {
		t.Fatalf("WriteWide: %v", err)
	}
	got, err := ParseWide(&buf)
	if err != nil {
		t.Fatalf("ParseWide: %v", err)
	}

	want := []curve.Raw{in[1], in[0], in[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWideSemicolonAndLabels(t *testing.T) {
	data := "Temp 1;Time [sec];Stress (MPa);Comment;Temp 2;G' (Pa);Time 2\n" +
		"80 °C;0.1;2.0;x;100 °C;1.5;0.1\n" +
		"80 °C;0.2;1.8;;100 °C;1.2;0.2\n" +
		"80 °C;bad;1.7;;100 °C;;0.3\n" +
		"80 °C;0.4;1.6;;;;\n"
	got, err := ParseWide(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWide: %v", err)
	}
	want := []curve.Raw{
		{Temperature: 80, Time: []float64{0.1, 0.2, 0.4}, Modulus: []float64{2.0, 1.8, 1.6}},
		{Temperature: 100, Time: []float64{0.1, 0.2}, Modulus: []float64{1.5, 1.2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("curves mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWideTabLatin1(t *testing.T) {
	data := []byte("Temperature (\xb0C)\tTime\tModulus\n50\t1\t10\n50\t2\t9\n")
	got, err := ParseWide(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseWide: %v", err)
	}
	if len(got) != 1 || got[0].Temperature != 50 || len(got[0].Time) != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseWideNoCurves(t *testing.T) {
	for name, data := range map[string]string{
		"empty":      "",
		"headerOnly": "Temp,Time,Modulus\n",
		"noTemp":     "Time,Modulus\n1,2\n",
		"noModulus":  "Temp,Time\n50,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseWide(strings.NewReader(data)); !errors.Is(err, ErrNoCurves) {
				t.Fatalf("err = %v, want ErrNoCurves", err)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbfTemp,Time,Modulus\n60,1,5\n60,2,4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 1 || got[0].Temperature != 60 {
		t.Fatalf("got %+v", got)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]columnKind{
		"Temperature":    columnTemp,
		"deg C":          columnTemp,
		"Time (s)":       columnTime,
		"seconds":        columnTime,
		"Modulus (Pa)":   columnModulus,
		"Storage":        columnModulus,
		"Relaxation G'":  columnModulus,
		"Sample comment": columnOther,
	}
	for header, want := range cases {
		if got := classify(header); got != want {
			t.Errorf("classify(%q) = %v, want %v", header, got, want)
		}
	}
}
