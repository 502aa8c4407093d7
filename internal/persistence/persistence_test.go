package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
)

const conferencesYAML = `- title: ICML
  year: 2025
  id: icml25
  full_name: International Conference on Machine Learning
  link: https://icml.cc/Conferences/2025
  deadline: 2025/1/30 23:59
  timezone: UTC-12
  place: Vancouver, Canada
  date: July 13 - 19, 2025
  start: 2025/7/13
  end: 2025/7/19
  hindex: 254
  sub: ML
  ranking: A*
- title: NeurIPS
  year: 2025
  id: neurips25
  deadline: TBA
  twitter: '@NeurIPSConf'
  tags:
  - ML
  - DL
`

const masterCSV = `title,full_name,wikicfp_query,wikicfp_link,ranking,sub,hindex
icml,International Conference on Machine Learning,ICML,,A*,ML,254
"cvpr","Computer Vision and Pattern Recognition, IEEE",CVPR,http://wikicfp.com/cfp/program?id=251,A*,CV,440
`

func items(records []conferences.Record) [][]conferences.Item {
	out := make([][]conferences.Item, 0, len(records))
	for _, r := range records {
		out = append(out, r.Items())
	}
	return out
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLRoundTrip(t *testing.T) {
	path := writeTemp(t, "conferences.yml", conferencesYAML)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"title", "year", "id", "full_name", "link", "deadline", "timezone", "place", "date", "start", "end", "hindex", "sub", "ranking"}, records[0].Keys())
	assert.Equal(t, "2025", records[0].String("year"))
	assert.Equal(t, "@NeurIPSConf", records[1].String("twitter"))

	out := filepath.Join(t.TempDir(), "out.yml")
	require.NoError(t, Save(out, records))
	again, err := LoadYAML(out)
	require.NoError(t, err)
	if diff := cmp.Diff(items(records), items(again)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := writeTemp(t, "master_data.csv", masterCSV)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Computer Vision and Pattern Recognition, IEEE", records[1].String("full_name"))
	assert.Equal(t, "", records[0].String("wikicfp_link"))

	out := filepath.Join(t.TempDir(), "nested", "master_data.csv")
	require.NoError(t, SaveCSV(out, records))
	again, err := LoadCSV(out)
	require.NoError(t, err)
	if diff := cmp.Diff(items(records), items(again)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeCSVUnionColumns(t *testing.T) {
	a := conferences.NewRecord(conferences.Item{Key: "title", Value: "ICML"}, conferences.Item{Key: "year", Value: 2025})
	b := conferences.NewRecord(conferences.Item{Key: "title", Value: "CVPR"}, conferences.Item{Key: "note", Value: "hybrid"})

	data, err := EncodeCSV([]conferences.Record{a, b})
	require.NoError(t, err)
	assert.Equal(t, "title,year,note\nICML,2025,\nCVPR,,hybrid\n", string(data))
}

func TestDecodeEmpty(t *testing.T) {
	records, err := DecodeYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	path := writeTemp(t, "empty.csv", "")
	records, err = LoadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load("conferences.json")
	assert.True(t, errors.IsValidationError(err))

	path := writeTemp(t, "bad.yml", "- title: [unclosed\n")
	_, err = Load(path)
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conferences.yml")
	require.NoError(t, SaveYAML(path, []conferences.Record{conferences.NewRecord(conferences.Item{Key: "id", Value: "icml25"})}))
	require.NoError(t, SaveYAML(path, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "conferences.yml", entries[0].Name())
}
