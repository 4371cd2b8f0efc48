package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

func TestMirrorAppendAssignsLocalIDs(t *testing.T) {
	m := newTestMirror(t)

	first, err := m.Append(testEnquiry())
	require.NoError(t, err)
	second, err := m.Append(testEnquiry())
	require.NoError(t, err)

	assert.NotEmpty(t, first.LocalID)
	assert.NotEqual(t, first.LocalID, second.LocalID)
	assert.Less(t, first.LocalID, second.LocalID)

	all, err := m.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.LocalID, all[0].LocalID)
}

func TestMirrorExportImport(t *testing.T) {
	src := newTestMirror(t)
	_, err := src.Append(testEnquiry())
	require.NoError(t, err)

	data, err := src.Export()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Travel Enquiry Form Data Storage", doc["description"])
	assert.Contains(t, doc, "createdAt")
	assert.Contains(t, doc, "lastUpdated")

	dst := newTestMirror(t)
	_, err = dst.Append(testEnquiry())
	require.NoError(t, err)
	_, err = dst.Append(testEnquiry())
	require.NoError(t, err)

	n, err := dst.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, mirrorLen(t, dst))
}

func TestMirrorImportRejectsInvalidDocuments(t *testing.T) {
	m := newTestMirror(t)
	_, err := m.Append(testEnquiry())
	require.NoError(t, err)

	for _, data := range []string{`not json`, `{"enquiries":[]}`, `{"travelEnquiries":{}}`} {
		_, err := m.Import([]byte(data))
		assert.ErrorIs(t, err, ErrInvalidImport, data)
	}
	assert.Equal(t, 1, mirrorLen(t, m))
}

func TestMirrorImportAssignsMissingLocalIDs(t *testing.T) {
	m := newTestMirror(t)
	n, err := m.Import([]byte(`{"travelEnquiries":[{"enquiryType":"flight","enquiryName":"A"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := m.All()
	require.NoError(t, err)
	assert.NotEmpty(t, all[0].LocalID)
}

func TestMirrorDeleteAndClear(t *testing.T) {
	m := newTestMirror(t)
	a, err := m.Append(testEnquiry())
	require.NoError(t, err)
	_, err = m.Append(testEnquiry())
	require.NoError(t, err)

	require.NoError(t, m.Delete(a.LocalID))
	assert.Equal(t, 1, mirrorLen(t, m))
	assert.ErrorIs(t, m.Delete(a.LocalID), ErrNotFound)

	require.NoError(t, m.Clear())
	all, err := m.All()
	require.NoError(t, err)
	assert.Equal(t, []models.Enquiry{}, all)
}
