package aseprite

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okFrame = `{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":100}`

func sheetJSON(frames, tags string) []byte {
	return []byte(fmt.Sprintf(`{"frames":[%s],"meta":{"image":"x.png","size":{"w":16,"h":16},"frameTags":[%s]}}`, frames, tags))
}

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestParse_Fixture(t *testing.T) {
	sheet, err := Parse(loadFixture(t, "knight.json"))
	require.NoError(t, err)

	require.Len(t, sheet.Frames, 5)
	want := []time.Duration{100, 150, 80, 120, 60}
	for i, f := range sheet.Frames {
		assert.Equal(t, want[i]*time.Millisecond, f.Time(), "frame %d", i)
	}

	f := sheet.Frames[0]
	assert.Equal(t, "knight 0.aseprite", f.Filename)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 24, H: 32}, f.Frame)
	assert.Equal(t, Rect{X: 4, Y: 0, W: 24, H: 32}, f.SpriteSourceSize)
	assert.Equal(t, Size{W: 32, H: 32}, f.SourceSize)
	assert.True(t, f.Trimmed)

	require.Len(t, sheet.Tags, 3)
	assert.Equal(t, Tag{Name: "idle", From: 0, To: 1, Direction: Forward, Color: "#000000ff"}, sheet.Tags[0])
	assert.Equal(t, PingPong, sheet.Tags[2].Direction)
	assert.Equal(t, 1, sheet.Tags[2].Len())

	assert.Equal(t, "knight.png", sheet.Meta.Image)
	assert.Equal(t, Size{W: 128, H: 32}, sheet.Meta.Size)
	assert.Equal(t, "1.3.7-x64", sheet.Meta.Version)
}

func TestParse_HashLayout(t *testing.T) {
	_, err := Parse(loadFixture(t, "knight_hash.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
	assert.NotErrorIs(t, err, ErrMalformedInput)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not_json", []byte(`{"frames":`), ErrMalformedInput},
		{"not_object", []byte(`[1,2,3]`), ErrMalformedInput},
		{"missing_frames", []byte(`{"meta":{"frameTags":[]}}`), ErrMalformedInput},
		{"no_frames", sheetJSON(``, ``), ErrMalformedInput},
		{"missing_meta", []byte(`{"frames":[` + okFrame + `]}`), ErrMalformedInput},
		{"missing_tags", []byte(`{"frames":[` + okFrame + `],"meta":{}}`), ErrMalformedInput},
		{"tags_not_array", []byte(`{"frames":[` + okFrame + `],"meta":{"frameTags":{}}}`), ErrMalformedInput},
		{
			"missing_rect",
			sheetJSON(`{"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":100}`, ``),
			ErrMalformedInput,
		},
		{
			"string_coordinate",
			sheetJSON(`{"frame":{"x":"0","y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":100}`, ``),
			ErrMalformedInput,
		},
		{
			"fractional_coordinate",
			sheetJSON(`{"frame":{"x":0.5,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":100}`, ``),
			ErrMalformedInput,
		},
		{
			"missing_source_size",
			sheetJSON(`{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"duration":100}`, ``),
			ErrMalformedInput,
		},
		{
			"trim_exceeds_source",
			sheetJSON(`{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":4,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":100}`, ``),
			ErrMalformedInput,
		},
		{
			"missing_duration",
			sheetJSON(`{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16}}`, ``),
			ErrMalformedInput,
		},
		{
			"zero_duration",
			sheetJSON(`{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":0}`, ``),
			ErrInvalidDuration,
		},
		{
			"negative_duration",
			sheetJSON(`{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":-10}`, ``),
			ErrInvalidDuration,
		},
		{
			"infinite_duration",
			sheetJSON(`{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":1e400}`, ``),
			ErrInvalidDuration,
		},
		{"tag_without_name", sheetJSON(okFrame, `{"from":0,"to":0}`), ErrMalformedInput},
		{"tag_without_to", sheetJSON(okFrame, `{"name":"a","from":0}`), ErrMalformedInput},
		{"tag_reversed_range", sheetJSON(okFrame+","+okFrame, `{"name":"a","from":1,"to":0}`), ErrEmptyRange},
		{"tag_past_end", sheetJSON(okFrame, `{"name":"a","from":0,"to":1}`), ErrOutOfBounds},
		{"tag_negative", sheetJSON(okFrame, `{"name":"a","from":-1,"to":0}`), ErrOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sheet, err := Parse(tc.data)
			assert.Nil(t, sheet)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			if tc.want != ErrUnsupportedLayout {
				assert.NotErrorIs(t, err, ErrUnsupportedLayout)
			}
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	sheet, err := Parse(sheetJSON(okFrame, `{"name":"a","from":0,"to":0}`))
	require.NoError(t, err)
	assert.Equal(t, Forward, sheet.Tags[0].Direction)
	assert.Empty(t, sheet.Frames[0].Filename)
	assert.False(t, sheet.Frames[0].Rotated)
}

func TestParse_FractionalDuration(t *testing.T) {
	frame := `{"frame":{"x":0,"y":0,"w":16,"h":16},"spriteSourceSize":{"x":0,"y":0,"w":16,"h":16},"sourceSize":{"w":16,"h":16},"duration":16.5}`
	sheet, err := Parse(sheetJSON(frame, ``))
	require.NoError(t, err)
	assert.Equal(t, 16500*time.Microsecond, sheet.Frames[0].Time())
}

func TestSheet_Validate(t *testing.T) {
	var nilSheet *Sheet
	assert.ErrorIs(t, nilSheet.Validate(), ErrMalformedInput)

	sheet := &Sheet{
		Frames: []Frame{{
			Frame:            Rect{W: 8, H: 8},
			SpriteSourceSize: Rect{W: 8, H: 8},
			SourceSize:       Size{W: 8, H: 8},
			Duration:         50,
		}},
		Tags: []Tag{{Name: "a", From: 0, To: 0}},
	}
	require.NoError(t, sheet.Validate())

	sheet.Frames[0].Duration = 0
	assert.ErrorIs(t, sheet.Validate(), ErrInvalidDuration)
}
