package frames

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCodec opens files as fakeImages and records what it opened.
type fakeCodec struct {
	opened []string
}

func (c *fakeCodec) OpenImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c.opened = append(c.opened, path)
	return &fakeImage{data: string(data)}, nil
}

func writeFrame(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestDecodeResult_ErrorSignalFailsAtomically(t *testing.T) {
	dir := t.TempDir()
	path := writeFrame(t, dir, "bias.fits", "x")
	codec := &fakeCodec{}

	raw := RawResult{
		Frames: []OutputFrame{{Tag: "MASTER_BIAS", Path: path}},
		Status: ExecStatus{Failed: true, Message: "bad pixel mask missing", Location: "cal_bias"},
	}
	res, err := DecodeResult(raw, DecodeOptions{Codec: codec})
	require.Nil(t, res)

	var ee *ExecutionError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, "bad pixel mask missing", ee.Message)
	require.Equal(t, "cal_bias", ee.Location)
	require.Equal(t, "bad pixel mask missing in cal_bias", ee.Error())
	require.Empty(t, codec.opened, "no product may be opened once the error signal is set")
}

func TestDecodeResult_GroupsByLowercasedTag(t *testing.T) {
	dir := t.TempDir()
	b1 := writeFrame(t, dir, "b1.fits", "bias-1")
	b2 := writeFrame(t, dir, "b2.fits", "bias-2")
	f1 := writeFrame(t, dir, "f1.fits", "flat-1")

	raw := RawResult{Frames: []OutputFrame{
		{Tag: "MASTER_BIAS", Path: b1},
		{Tag: "master_bias", Path: b2},
		{Tag: "MASTER_FLAT", Path: f1},
	}}
	res, err := DecodeResult(raw, DecodeOptions{Codec: &fakeCodec{}})
	require.NoError(t, err)

	require.Equal(t, []string{"master_bias", "master_flat"}, res.Tags())
	require.True(t, res.Has("MASTER_BIAS"), "tag lookups are case-insensitive")

	// A recurring tag promotes to an ordered list; a single one stays scalar.
	require.IsType(t, []Image{}, res.Value("master_bias"))
	require.IsType(t, &fakeImage{}, res.Value("master_flat"))

	images := res.Images("master_bias")
	require.Len(t, images, 2)
	require.Equal(t, "bias-1", images[0].(*fakeImage).data, "report order is preserved")
	require.Equal(t, "bias-2", images[1].(*fakeImage).data)

	first, ok := res.Image("master_bias")
	require.True(t, ok)
	require.Equal(t, "bias-1", first.(*fakeImage).data)
}

func TestDecodeResult_ThirdFrameAppendsToList(t *testing.T) {
	dir := t.TempDir()
	raw := RawResult{Frames: []OutputFrame{
		{Tag: "STACK", Path: writeFrame(t, dir, "s1.fits", "1")},
		{Tag: "STACK", Path: writeFrame(t, dir, "s2.fits", "2")},
		{Tag: "STACK", Path: writeFrame(t, dir, "s3.fits", "3")},
	}}
	res, err := DecodeResult(raw, DecodeOptions{Codec: &fakeCodec{}})
	require.NoError(t, err)

	require.Equal(t, []string{"stack"}, res.Tags(), "the tag is recorded once however often it recurs")
	images := res.Images("stack")
	require.Len(t, images, 3)
	for i, want := range []string{"1", "2", "3"} {
		require.Equal(t, want, images[i].(*fakeImage).data)
	}
}

func TestDecodeResult_DeleteRemovesOnlyProducts(t *testing.T) {
	dir := t.TempDir()
	product := writeFrame(t, dir, "out.fits", "x")
	unrelated := writeFrame(t, dir, "input-tmp.fits", "y")

	raw := RawResult{Frames: []OutputFrame{{Tag: "OUT", Path: product}}}
	res, err := DecodeResult(raw, DecodeOptions{Codec: &fakeCodec{}, Delete: true})
	require.NoError(t, err)
	require.True(t, res.Has("out"))

	_, err = os.Stat(product)
	require.True(t, os.IsNotExist(err), "the product file must be removed after opening")
	_, err = os.Stat(unrelated)
	require.NoError(t, err, "files not reported as products must be left alone")
}

func TestDecodeResult_ReportsFramesBeforeFailing(t *testing.T) {
	var buf bytes.Buffer
	raw := RawResult{
		Frames: []OutputFrame{{Tag: "OUT", Path: "/work/out.fits"}},
		Status: ExecStatus{Failed: true, Message: "boom", Location: "cal_flat"},
	}
	_, err := DecodeResult(raw, DecodeOptions{Codec: &fakeCodec{}, Progress: &buf})
	require.Error(t, err)
	require.Contains(t, buf.String(), "Result frames:")
	require.Contains(t, buf.String(), "OUT = /work/out.fits")
}

func TestDecodeResult_MissingTagAccessors(t *testing.T) {
	res, err := DecodeResult(RawResult{}, DecodeOptions{Codec: &fakeCodec{}})
	require.NoError(t, err)
	require.Empty(t, res.Tags())
	require.False(t, res.Has("anything"))
	require.Nil(t, res.Value("anything"))
	require.Nil(t, res.Images("anything"))
	_, ok := res.Image("anything")
	require.False(t, ok)
	require.NotEmpty(t, res.Dir)
}
