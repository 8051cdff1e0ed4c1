package filter

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

func sample() []model.Record {
	return []model.Record{
		{Index: 0, Name: "Universitas Pasundan", Province: "Jawa Barat", OperatingBody: "Yayasan Pasundan"},
		{Index: 1, Name: "Universitas Banten Jaya", Province: "Banten", OperatingBody: "Yayasan Banten"},
		{Index: 2, Name: "Institut Teknologi Nasional", Province: "Jawa Barat", OperatingBody: "Yayasan Itenas"},
		{Index: 3, Name: "Universitas Udayana Swasta", Province: "Bali", OperatingBody: "Yayasan Pasundan"},
	}
}

func names(rows []model.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestApply_IdentityWhenUnconstrained(t *testing.T) {
	recs := sample()
	rows := Apply(recs, All())
	if !reflect.DeepEqual(Records(rows), recs) {
		t.Fatalf("identity violated: got %v", names(rows))
	}
	for i, r := range rows {
		if r.No != i+1 {
			t.Fatalf("row %d numbered %d", i, r.No)
		}
	}
	if got := Apply(recs, Criteria{}); len(got) != len(recs) {
		t.Fatalf("empty criteria should behave like Semua; got %d rows", len(got))
	}
}

func TestApply_ConjunctiveAndOrdered(t *testing.T) {
	recs := sample()
	got := names(Apply(recs, Criteria{Province: "Jawa Barat", OperatingBody: model.Any, Institution: model.Any}))
	want := []string{"Universitas Pasundan", "Institut Teknologi Nasional"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	got = names(Apply(recs, Criteria{Province: "Jawa Barat", OperatingBody: "Yayasan Pasundan", Institution: model.Any}))
	if !reflect.DeepEqual(got, []string{"Universitas Pasundan"}) {
		t.Fatalf("AND of province+badan: got %v", got)
	}
}

func TestApply_RenumbersFromOne(t *testing.T) {
	rows := Apply(sample(), Criteria{OperatingBody: "Yayasan Pasundan"})
	if len(rows) != 2 || rows[0].No != 1 || rows[1].No != 2 {
		t.Fatalf("unexpected numbering: %+v", rows)
	}
	if rows[1].Index != 3 {
		t.Fatalf("source index lost: %+v", rows[1])
	}
}

func TestApply_Idempotent(t *testing.T) {
	recs := sample()
	for _, c := range []Criteria{
		All(),
		{Province: "Jawa Barat"},
		{OperatingBody: "Yayasan Pasundan"},
		{Province: "Bali", Institution: "Universitas Udayana Swasta"},
		{Province: "Papua"},
	} {
		once := Apply(recs, c)
		twice := Apply(Records(once), c)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("criteria %+v not idempotent: %v vs %v", c, names(once), names(twice))
		}
	}
}

func TestApply_UnmatchedIsEmptyNotError(t *testing.T) {
	rows := Apply(sample(), Criteria{Institution: "Tidak Ada"})
	if rows == nil || len(rows) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", rows)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	recs := sample()
	before := append([]model.Record(nil), recs...)
	_ = Apply(recs, Criteria{Province: "Banten"})
	if !reflect.DeepEqual(recs, before) {
		t.Fatalf("input mutated")
	}
}

func TestApply_TitleCasedProvinceEndToEnd(t *testing.T) {
	recs := []model.Record{
		{Name: "A", Province: "Jawa Barat"},
		{Name: "B", Province: "Banten"},
		{Name: "C", Province: "Bali"},
	}
	got := names(Apply(recs, Criteria{Province: "Jawa Barat"}))
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("got %v want [A]", got)
	}
}

func TestCriteriaFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set(ParamProvince, " Banten ")
	q.Set(ParamInstitution, "")
	c := CriteriaFromQuery(q)
	want := Criteria{Province: "Banten", OperatingBody: model.Any, Institution: model.Any}
	if c != want {
		t.Fatalf("got %+v want %+v", c, want)
	}
	if c.IsUnconstrained() {
		t.Fatalf("province set; must not be unconstrained")
	}
	if !CriteriaFromQuery(url.Values{}).IsUnconstrained() {
		t.Fatalf("empty query must be unconstrained")
	}
}

func TestKey_StableUnderNormalization(t *testing.T) {
	a := Criteria{Province: "Banten"}
	b := Criteria{Province: "Banten", OperatingBody: model.Any, Institution: model.Any}
	if a.Key() != b.Key() {
		t.Fatalf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestKey_EscapesSeparators(t *testing.T) {
	a := Criteria{Province: "A&badan=B"}
	b := Criteria{Province: "A", OperatingBody: "B&badan=Semua"}
	if a.Key() == b.Key() {
		t.Fatalf("distinct selections share key %q", a.Key())
	}
	back, err := url.ParseQuery(a.Key())
	if err != nil {
		t.Fatalf("key is not a query string: %v", err)
	}
	if got := CriteriaFromQuery(back); got != a.Normalize() {
		t.Fatalf("key round trip=%+v want %+v", got, a.Normalize())
	}
}
