package aseprite

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Parse decodes and validates Aseprite spritesheet JSON. Errors wrap one of the
// package sentinels and name the offending JSON path.
func Parse(data []byte) (*Sheet, error) {
	if !gjson.ValidBytes(data) {
		return nil, fieldError(ErrMalformedInput, "$", "invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fieldError(ErrMalformedInput, "$", "expected object")
	}

	frames := root.Get("frames")
	switch {
	case frames.IsObject():
		return nil, fmt.Errorf("aseprite: frames: %w", ErrUnsupportedLayout)
	case !frames.IsArray():
		return nil, fieldError(ErrMalformedInput, "frames", "expected array")
	}

	sheet := &Sheet{}
	for i, fr := range frames.Array() {
		f, err := parseFrame(fr, fmt.Sprintf("frames[%d]", i))
		if err != nil {
			return nil, err
		}
		sheet.Frames = append(sheet.Frames, f)
	}

	meta := root.Get("meta")
	if !meta.IsObject() {
		return nil, fieldError(ErrMalformedInput, "meta", "expected object")
	}
	sheet.Meta = parseMeta(meta)

	tags := meta.Get("frameTags")
	if !tags.IsArray() {
		return nil, fieldError(ErrMalformedInput, "meta.frameTags", "expected array")
	}
	for i, tr := range tags.Array() {
		t, err := parseTag(tr, fmt.Sprintf("meta.frameTags[%d]", i))
		if err != nil {
			return nil, err
		}
		sheet.Tags = append(sheet.Tags, t)
	}

	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	return sheet, nil
}

func parseFrame(r gjson.Result, path string) (Frame, error) {
	if !r.IsObject() {
		return Frame{}, fieldError(ErrMalformedInput, path, "expected object")
	}
	var f Frame
	var err error
	if f.Frame, err = parseRect(r, path, "frame"); err != nil {
		return Frame{}, err
	}
	if f.SpriteSourceSize, err = parseRect(r, path, "spriteSourceSize"); err != nil {
		return Frame{}, err
	}
	if f.SourceSize, err = parseSize(r, path, "sourceSize"); err != nil {
		return Frame{}, err
	}

	d := r.Get("duration")
	if d.Type != gjson.Number {
		return Frame{}, fieldError(ErrMalformedInput, path+".duration", "expected number")
	}
	f.Duration = d.Num

	f.Filename = r.Get("filename").String()
	f.Rotated = r.Get("rotated").Bool()
	f.Trimmed = r.Get("trimmed").Bool()
	return f, nil
}

func parseTag(r gjson.Result, path string) (Tag, error) {
	if !r.IsObject() {
		return Tag{}, fieldError(ErrMalformedInput, path, "expected object")
	}
	name := r.Get("name")
	if name.Type != gjson.String {
		return Tag{}, fieldError(ErrMalformedInput, path+".name", "expected string")
	}
	from, err := intField(r, path, "from")
	if err != nil {
		return Tag{}, err
	}
	to, err := intField(r, path, "to")
	if err != nil {
		return Tag{}, err
	}

	dir := Forward
	if v := r.Get("direction"); v.Type == gjson.String && v.Str != "" {
		dir = Direction(v.Str)
	}
	return Tag{
		Name:      name.Str,
		From:      from,
		To:        to,
		Direction: dir,
		Color:     r.Get("color").String(),
	}, nil
}

func parseMeta(r gjson.Result) Meta {
	m := Meta{
		App:     r.Get("app").String(),
		Version: r.Get("version").String(),
		Image:   r.Get("image").String(),
		Format:  r.Get("format").String(),
		Scale:   r.Get("scale").String(),
	}
	// meta.size is informative; a missing or odd value is not fatal.
	m.Size.W = int(r.Get("size.w").Int())
	m.Size.H = int(r.Get("size.h").Int())
	return m
}

func parseRect(r gjson.Result, path, key string) (Rect, error) {
	obj := r.Get(key)
	p := path + "." + key
	if !obj.IsObject() {
		return Rect{}, fieldError(ErrMalformedInput, p, "expected object")
	}
	var out Rect
	for _, c := range []struct {
		name string
		dst  *int
	}{{"x", &out.X}, {"y", &out.Y}, {"w", &out.W}, {"h", &out.H}} {
		v, err := intField(obj, p, c.name)
		if err != nil {
			return Rect{}, err
		}
		*c.dst = v
	}
	return out, nil
}

func parseSize(r gjson.Result, path, key string) (Size, error) {
	obj := r.Get(key)
	p := path + "." + key
	if !obj.IsObject() {
		return Size{}, fieldError(ErrMalformedInput, p, "expected object")
	}
	w, err := intField(obj, p, "w")
	if err != nil {
		return Size{}, err
	}
	h, err := intField(obj, p, "h")
	if err != nil {
		return Size{}, err
	}
	return Size{W: w, H: h}, nil
}

func intField(r gjson.Result, path, key string) (int, error) {
	v := r.Get(key)
	p := path + "." + key
	if !v.Exists() {
		return 0, fieldError(ErrMalformedInput, p, "missing")
	}
	if v.Type != gjson.Number {
		return 0, fieldError(ErrMalformedInput, p, "expected number, got %s", v.Type)
	}
	if v.Num != math.Trunc(v.Num) || math.Abs(v.Num) > math.MaxInt32 {
		return 0, fieldError(ErrMalformedInput, p, "expected integer, got %v", v.Num)
	}
	return int(v.Num), nil
}
