package conferences

import (
	"testing"
	"time"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveID(t *testing.T) {
	tests := []struct {
		title string
		year  int
		want  string
	}{
		{"icml", 2025, "icml25"},
		{"ICML", 2025, "icml25"},
		{"CVPR", 2009, "cvpr09"},
		{"iccv", 2100, "iccv00"},
	}
	for _, tt := range tests {
		if got := DeriveID(tt.title, tt.year); got != tt.want {
			t.Errorf("DeriveID(%q, %d) = %q, want %q", tt.title, tt.year, got, tt.want)
		}
	}
}

func TestRecordOrderAndMutation(t *testing.T) {
	r := NewRecord(Item{"title", "ICML"}, Item{"year", uint64(2025)}, Item{"long", "Machine Learning"})
	assert.Equal(t, []string{"title", "year", "long"}, r.Keys())
	assert.Equal(t, "2025", r.String("year"))

	r.Set("title", "ICRA")
	assert.Equal(t, []string{"title", "year", "long"}, r.Keys())

	require.True(t, r.Rename("long", "full_name"))
	assert.Equal(t, []string{"title", "year", "full_name"}, r.Keys())
	assert.Equal(t, "Machine Learning", r.String("full_name"))

	assert.True(t, r.Delete("year"))
	assert.False(t, r.Delete("year"))
	assert.Equal(t, 2, r.Len())

	clone := r.Clone()
	clone.Set("host", "x")
	assert.False(t, r.Has("host"))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", ValueString(nil))
	assert.Equal(t, "12", ValueString(int64(12)))
	assert.Equal(t, "1.5", ValueString(1.5))
	assert.Equal(t, "ML, CV", ValueString([]any{"ML", "CV"}))
	assert.Equal(t, "2025-01-23", ValueString(time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-23 23:59", ValueString(time.Date(2025, 1, 23, 23, 59, 0, 0, time.UTC)))
}

func TestDeadlineRecordConversion(t *testing.T) {
	in := NewRecord(
		Item{"title", "ICML"},
		Item{"year", uint64(2025)},
		Item{"id", "icml25"},
		Item{"deadline", "2025/1/23 23:59"},
		Item{"hindex", uint64(254)},
		Item{"sub", "ML"},
		Item{"custom_key", "kept"},
	)

	d, err := DeadlineFromRecord(in)
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year)
	assert.Equal(t, "254", d.HIndex)
	assert.Equal(t, []string{"custom_key"}, d.Extra.Keys())

	out := d.Record()
	want := []Item{
		{"title", "ICML"},
		{"year", 2025},
		{"id", "icml25"},
		{"deadline", "2025/1/23 23:59"},
		{"hindex", 254},
		{"sub", "ML"},
		{"custom_key", "kept"},
	}
	if diff := cmp.Diff(want, out.Items()); diff != "" {
		t.Errorf("Record() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeadlineFromRecordDerivesID(t *testing.T) {
	d, err := DeadlineFromRecord(NewRecord(Item{"title", "NeurIPS"}, Item{"year", "2024"}))
	require.NoError(t, err)
	assert.Equal(t, "neurips24", d.ID)
}

func TestDeadlineFromRecordBadYear(t *testing.T) {
	_, err := DeadlineFromRecord(NewRecord(Item{"title", "X"}, Item{"year", "next year"}))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDeadlineGetSet(t *testing.T) {
	d := &Deadline{}
	require.NoError(t, d.Set(FieldRanking, "A*"))
	require.NoError(t, d.Set(FieldYear, "2026"))
	v, ok := d.Get(FieldRanking)
	assert.True(t, ok)
	assert.Equal(t, "A*", v)
	v, _ = d.Get(FieldYear)
	assert.Equal(t, "2026", v)

	_, ok = d.Get(Field("host"))
	assert.False(t, ok)
	assert.Error(t, d.Set(Field("host"), "x"))
}

func TestDeadlineValidate(t *testing.T) {
	assert.NoError(t, (&Deadline{ID: "icml25", Year: 2025}).Validate())
	assert.Error(t, (&Deadline{ID: "icml24", Year: 2025}).Validate())
	assert.Error(t, (&Deadline{ID: "icml25"}).Validate())
	assert.Error(t, (&Deadline{Year: 2025}).Validate())
}

func TestDeadlineClone(t *testing.T) {
	d := &Deadline{ID: "icml25", Extra: NewRecord(Item{"k", "v"})}
	c := d.Clone()
	c.ID = "other"
	c.Extra.Set("k", "changed")
	assert.Equal(t, "icml25", d.ID)
	assert.Equal(t, "v", d.Extra.String("k"))
}

func TestMergeableFieldsExcludeID(t *testing.T) {
	for _, f := range MergeableFields() {
		if f == FieldID {
			t.Fatal("MergeableFields must not contain the id")
		}
	}
	assert.Len(t, Fields(), len(MergeableFields())+1)
}

func TestMasterFromRecord(t *testing.T) {
	m := MasterFromRecord(NewRecord(
		Item{"title", "cvpr"},
		Item{"full_name", "Computer Vision and Pattern Recognition"},
		Item{"wikicpf_query", "CVPR"},
		Item{"hindex", "389"},
	))
	assert.Equal(t, "CVPR", m.WikiCFPQuery)
	assert.Equal(t, "CVPR", m.Query())
	assert.Equal(t, "389", m.HIndex)

	assert.Equal(t, []string{"title", "full_name", "wikicfp_query", "wikicfp_link", "ranking", "sub", "hindex"}, m.Record().Keys())
	assert.Equal(t, "icra", Master{Title: "icra"}.Query())
}

func TestMastersFromRecordsSkipsBlank(t *testing.T) {
	ms := MastersFromRecords([]Record{
		NewRecord(Item{"title", ""}),
		NewRecord(Item{"title", "icml"}),
	})
	require.Len(t, ms, 1)
	assert.Equal(t, "icml", ms[0].Title)
}

func TestDeadlinesCollection(t *testing.T) {
	c := NewDeadlines()
	require.NoError(t, c.Add(&Deadline{ID: "icml25"}))
	require.NoError(t, c.Add(&Deadline{ID: "cvpr25"}))

	err := c.Add(&Deadline{ID: "ICML25"})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
	assert.Error(t, c.Add(nil))
	assert.Error(t, c.Add(&Deadline{}))

	d, ok := c.Get("ICML25")
	require.True(t, ok)
	assert.Equal(t, "icml25", d.ID)
	assert.Equal(t, []string{"icml25", "cvpr25"}, c.IDs())
	assert.Equal(t, 2, c.Len())
}
