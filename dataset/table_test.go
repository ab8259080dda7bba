package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `City;State;Median Age;Race;Count
Perris;California;27.9;Hispanic or Latino;50000
Perris;California;27.9;White;30000
Mobile;Alabama;37.2;Black;80000
Mobile;Alabama;37.2;Black;80000
Norman;Oklahoma;29.1;;
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample), ';')
	require.NoError(t, err)

	assert.Equal(t, []string{"City", "State", "Median Age", "Race", "Count"}, tbl.Columns)
	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, 4, tbl.Rows[4].Label)
	assert.Equal(t, []string{"Norman", "Oklahoma", "29.1", "", ""}, tbl.Rows[4].Values)
}

func TestReadCSVPadsShortRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a;b;c\n1;2\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", ""}, tbl.Rows[0].Values)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ';')
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a;b\n1;2;3\n"), ';')
	assert.Error(t, err)
}

func TestDropColumns(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample), ';')
	require.NoError(t, err)

	dropped := tbl.DropColumns("Race", "Count", "Number of Veterans")

	assert.Equal(t, []string{"Race", "Count"}, dropped)
	assert.Equal(t, []string{"City", "State", "Median Age"}, tbl.Columns)
	for _, row := range tbl.Rows {
		assert.Len(t, row.Values, 3)
	}

	assert.Nil(t, tbl.DropColumns("Race"), "dropping an absent column is a no-op")
}

func TestDropDuplicatesKeepsFirstAndLabels(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample), ';')
	require.NoError(t, err)
	tbl.DropColumns("Race", "Count")

	removed := tbl.DropDuplicates()

	assert.Equal(t, 2, removed)
	labels := make([]int, 0, tbl.Len())
	for _, row := range tbl.Rows {
		labels = append(labels, row.Label)
	}
	assert.Equal(t, []int{0, 2, 4}, labels)

	assert.Equal(t, 0, tbl.DropDuplicates(), "second pass must be a no-op")
}

func TestDropDuplicatesNoKeyCollision(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a", "b"},
		Rows: []Row{
			{Label: 0, Values: []string{"x|", "y"}},
			{Label: 1, Values: []string{"x", "|y"}},
		},
	}
	assert.Equal(t, 0, tbl.DropDuplicates())
}

func TestLoc(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample), ';')
	require.NoError(t, err)
	tbl.DropColumns("Race", "Count")
	tbl.DropDuplicates()

	rows, err := tbl.Loc(4, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Norman", "Oklahoma", "29.1"},
		{"Perris", "California", "27.9"},
	}, Values(rows))

	_, err = tbl.Loc(1)
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestColumnAndDistinct(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sample), ';')
	require.NoError(t, err)

	cities, err := tbl.Distinct("City")
	require.NoError(t, err)
	assert.Equal(t, []string{"Perris", "Mobile", "Norman"}, cities)

	_, err = tbl.Column("Population")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
