package recwire_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/recwire/recwire"
)

type tripItem struct {
	Count   int          `json:"count"`
	Rate    float64      `json:"rate"`
	Label   string       `json:"label"`
	Active  bool         `json:"active"`
	Sz      Size         `json:"size"`
	ID      uuid.UUID    `json:"id"`
	When    time.Time    `json:"when"`
	Day     recwire.Date `json:"day"`
	MaybeN  *int         `json:"maybeN"`
	Absent  *string      `json:"absent"`
	Ignored *bool        `json:"ignored,omitempty"`
}

type tripPayload struct {
	Main  tripItem   `json:"main"`
	Items []tripItem `json:"items"`
	Ints  []int      `json:"ints"`
}

func samplePayload(t *testing.T) tripPayload {
	t.Helper()
	n := 42
	item := tripItem{
		Count:  7,
		Rate:   7.5,
		Label:  "seven",
		Active: true,
		Sz:     Small,
		ID:     mustUUID(t, "7c2de28a-48ef-4b4a-9aa4-c4cf9b01e2a3"),
		When:   time.Date(2020, 6, 22, 8, 55, 5, 0, time.UTC),
		Day:    recwire.NewDate(2020, time.June, 22),
		MaybeN: &n,
	}
	return tripPayload{
		Main:  item,
		Items: []tripItem{item, item},
		Ints:  []int{3, 1, 2},
	}
}

func TestRoundTrip_Tree(t *testing.T) {
	in := samplePayload(t)
	tree, err := recwire.Marshal(in)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	got, err := recwire.Unmarshal[tripPayload](tree)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, in)
	}
}

func TestRoundTrip_JSONBytes(t *testing.T) {
	in := samplePayload(t)
	b, err := recwire.MarshalJSON(in)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	got, err := recwire.UnmarshalJSON[tripPayload](b)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, in)
	}
}

func TestRoundTrip_DeepNesting(t *testing.T) {
	type leaf struct {
		N int `json:"n"`
	}
	type branch struct {
		Leaves []leaf `json:"leaves"`
		Extra  *leaf  `json:"extra,omitempty"`
	}
	type root struct {
		Branches []branch `json:"branches"`
	}
	in := root{Branches: []branch{
		{Leaves: []leaf{{1}, {2}, {3}}, Extra: &leaf{9}},
		{Leaves: []leaf{}},
		{Leaves: []leaf{{4}}},
	}}
	tree, err := recwire.Marshal(in)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	got, err := recwire.Unmarshal[root](tree)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, in)
	}
}

func TestRoundTrip_YAMLBytes(t *testing.T) {
	in := samplePayload(t)
	b, err := recwire.MarshalYAML(in)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	got, err := recwire.UnmarshalYAML[tripPayload](b)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, in)
	}
}
