package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

type staticCharts struct{}

func (staticCharts) RenderChart(spec dashboard.ChartSpec) (string, error) {
	return "<div></div>", nil
}

func TestValidateDataset(t *testing.T) {
	path := writeDataset(t, dashboard.DefaultDataset())
	var out bytes.Buffer
	require.NoError(t, validateDataset(&out, path))
	assert.Contains(t, out.String(), "7 inward stages")
}

func TestValidateDatasetRejectsEmptyFunnel(t *testing.T) {
	data := dashboard.DefaultDataset()
	data.OutwardFunnel = []dashboard.FunnelStage{}
	path := writeDataset(t, data)
	err := validateDataset(&bytes.Buffer{}, path)
	require.ErrorIs(t, err, dashboard.ErrEmptyInput)
}

func TestWriteSnapshotJSON(t *testing.T) {
	controller := dashboard.NewController(dashboard.ControllerOptions{Charts: staticCharts{}})
	require.NoError(t, controller.Initialize(context.Background(), dashboard.DefaultDataset()))

	var out bytes.Buffer
	require.NoError(t, writeSnapshot(context.Background(), &out, controller, "json"))
	var view dashboard.View
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, dashboard.MetricCount, view.Metric)
	assert.Len(t, view.Table, 5)
}

func TestWriteSnapshotYAML(t *testing.T) {
	controller := dashboard.NewController(dashboard.ControllerOptions{Charts: staticCharts{}})
	require.NoError(t, controller.Initialize(context.Background(), dashboard.DefaultDataset()))

	var out bytes.Buffer
	require.NoError(t, writeSnapshot(context.Background(), &out, controller, "yaml"))
	assert.True(t, strings.Contains(out.String(), "inward_funnel:"))
}

func TestGlobalsLogger(t *testing.T) {
	_, err := (&Globals{LogLevel: "debug"}).logger()
	require.NoError(t, err)
	_, err = (&Globals{LogLevel: "loud"}).logger()
	require.Error(t, err)
}

func writeDataset(t *testing.T, data dashboard.Dataset) string {
	t.Helper()
	raw, err := yaml.Marshal(data)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}
