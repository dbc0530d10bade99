package printer

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pfkit/pkg/schema"
)

func sampleChunks() []schema.Chunk {
	item := schema.Composite("Item", []schema.Field{
		{Name: "name", Type: schema.Text(true)},
		{Name: "pos", Type: schema.InlineArray(schema.Scalar(schema.KindF32), 3)},
	})
	root := schema.Composite("Root", []schema.Field{
		{Name: "id", Type: schema.Scalar(schema.KindU32)},
		{Name: "items", Type: schema.Array(schema.ArrayDynamic, item, 0)},
		{Name: "extra", Type: schema.Variant(schema.Scalar(schema.KindU8), item)},
	})
	return []schema.Chunk{
		schema.NewChunk("ABCD", []schema.Version{
			{Number: 0, Root: schema.Scalar(schema.KindU32)},
			{Number: 2, Root: root},
		}),
		schema.NewChunk("CNT", []schema.Version{{Number: 0, Root: schema.Scalar(schema.KindU16)}}),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintChunks(sampleChunks()))

	want := `[ABCD] (borrows)
  v0: u32
  v2: Root (borrows)
    id: u32
    items: []Item
      name: wstring
      pos: [3]f32
    extra: variant<u8 | Item>
      #0: u8
      #1: Item
        name: wstring
        pos: [3]f32
[CNT]
  v0: u16
`
	require.Equal(t, want, buf.String())
}

func TestPrinter_TextMaxDepth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 1
	opts.ShowBorrows = false
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintChunk(sampleChunks()[0]))

	want := `[ABCD]
  v0: u32
  v2: Root
    id: u32
    items: []Item
    extra: variant<u8 | Item>
`
	require.Equal(t, want, buf.String())
}

func TestPrinter_JSON(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.LatestOnly = true
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintChunks(sampleChunks()))

	var got []chunkNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "ABCD", got[0].Magic)
	require.True(t, got[0].Borrows)
	require.Len(t, got[0].Versions, 1)

	root := got[0].Versions[0].Root
	require.Equal(t, uint32(2), got[0].Versions[0].Number)
	require.Equal(t, "composite", root.Kind)
	require.Equal(t, "Root", root.Name)
	require.Len(t, root.Fields, 3)
	items := root.Fields[1].Type
	require.Equal(t, "array", items.Kind)
	require.Equal(t, "dynamic", items.Array)
	require.Equal(t, "Item", items.Inner.Name)
	require.Equal(t, "wstring", items.Inner.Fields[0].Type.Kind)
	require.Len(t, root.Fields[2].Type.Alternatives, 2)

	require.Equal(t, "CNT", got[1].Magic)
	require.False(t, got[1].Borrows)
}

func TestPrinter_YAML(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatYAML
	opts.MaxDepth = 1
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintChunk(sampleChunks()[0]))

	var got []chunkNode
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Versions, 2)
	root := got[0].Versions[1].Root
	require.Equal(t, "Root", root.Name)
	require.False(t, root.Truncated)
	require.True(t, root.Fields[1].Type.Inner.Truncated)
	require.Empty(t, root.Fields[1].Type.Inner.Fields)
	require.Contains(t, buf.String(), "magic: ABCD")
}
