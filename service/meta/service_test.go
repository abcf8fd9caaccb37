package meta

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/meta"
	document := []byte("name: ${env.FLUXCOST_META_NAME}\nsize: 3\n")
	require.NoError(t, fs.Upload(ctx, baseURL+"/doc.yaml", file.DefaultFileOsMode, bytes.NewReader(document)))
	t.Setenv("FLUXCOST_META_NAME", "billing")

	type doc struct {
		Name string `yaml:"name"`
		Size int    `yaml:"size"`
	}

	srv := New(fs, baseURL)
	var got doc
	require.NoError(t, srv.Load(ctx, "doc.yaml", &got))
	assert.Equal(t, doc{Name: "billing", Size: 3}, got)

	got = doc{}
	require.NoError(t, New(fs, "").Load(ctx, baseURL+"/doc.yaml", &got))
	assert.Equal(t, "billing", got.Name)

	assert.Error(t, srv.Load(ctx, "missing.yaml", &got))

	require.NoError(t, fs.Upload(ctx, baseURL+"/bad.yaml", file.DefaultFileOsMode, bytes.NewReader([]byte("size: [1"))))
	assert.Error(t, srv.Load(ctx, "bad.yaml", &got))
}
