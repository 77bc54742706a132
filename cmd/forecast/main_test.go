package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beaches.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadBeaches(t *testing.T) {
	path := writeFile(t, `[{"name":"Manly","position":"E","lat":-33.792726,"lng":151.289824}]`)

	beaches, err := readBeaches(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Beach{{Name: "Manly", Position: domain.PositionEast, Lat: -33.792726, Lng: 151.289824}}, beaches)
}

func TestReadBeaches_InvalidPosition(t *testing.T) {
	path := writeFile(t, `[{"name":"Manly","position":"NE","lat":1,"lng":1}]`)

	_, err := readBeaches(path)
	assert.ErrorContains(t, err, `invalid position "NE"`)
}

func TestReadBeaches_BadJSON(t *testing.T) {
	_, err := readBeaches(writeFile(t, `{`))
	assert.ErrorContains(t, err, "parse beaches")
}

func TestWriteForecast_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeForecast(&buf, []domain.TimeForecast{}))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestWriteForecastFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.json")
	forecast := []domain.TimeForecast{{Time: "2020-04-26T00:00:00+00:00", Forecast: []domain.BeachForecast{}}}

	require.NoError(t, writeForecastFile(path, forecast))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"time":"2020-04-26T00:00:00+00:00","forecast":[]}]`, string(data))
}

func TestWriteForecastFile_CreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "forecast.json")

	err := writeForecastFile(path, []domain.TimeForecast{})
	assert.ErrorContains(t, err, "create")
}
