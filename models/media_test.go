package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseMediaList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want MediaList
	}{
		{name: "empty", raw: "", want: nil},
		{name: "null", raw: "null", want: nil},
		{name: "empty array", raw: "[]", want: nil},
		{
			name: "array of strings",
			raw:  `["https://cdn/a.jpg","https://cdn/b.jpg"]`,
			want: MediaList{{URL: "https://cdn/a.jpg"}, {URL: "https://cdn/b.jpg"}},
		},
		{
			name: "array of objects",
			raw:  `[{"url":"https://cdn/a.jpg","rotation":90},{"url":"https://cdn/b.mp4"}]`,
			want: MediaList{{URL: "https://cdn/a.jpg", Rotation: 90}, {URL: "https://cdn/b.mp4"}},
		},
		{
			name: "mixed shapes",
			raw:  `["https://cdn/a.jpg",{"url":"https://cdn/b.jpg","rotation":"180"}]`,
			want: MediaList{{URL: "https://cdn/a.jpg"}, {URL: "https://cdn/b.jpg", Rotation: 180}},
		},
		{
			name: "bare url",
			raw:  `https://cdn/a.jpg`,
			want: MediaList{{URL: "https://cdn/a.jpg"}},
		},
		{
			name: "json string",
			raw:  `"https://cdn/a.jpg"`,
			want: MediaList{{URL: "https://cdn/a.jpg"}},
		},
		{
			name: "double encoded array",
			raw:  `"[{\"url\":\"https://cdn/a.jpg\",\"rotation\":270}]"`,
			want: MediaList{{URL: "https://cdn/a.jpg", Rotation: 270}},
		},
		{
			name: "odd rotation is normalized",
			raw:  `[{"url":"https://cdn/a.jpg","rotation":-90},{"url":"https://cdn/b.jpg","rotation":100}]`,
			want: MediaList{{URL: "https://cdn/a.jpg", Rotation: 270}, {URL: "https://cdn/b.jpg", Rotation: 90}},
		},
		{
			name: "items without url are dropped",
			raw:  `[{"rotation":90},"https://cdn/a.jpg",""]`,
			want: MediaList{{URL: "https://cdn/a.jpg"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMediaList([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ParseMediaList() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMediaList() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseMediaListRejectsBrokenJSON(t *testing.T) {
	if _, err := ParseMediaList([]byte(`[{"url":`)); err == nil {
		t.Error("expected an error for truncated JSON")
	}
}

func TestNormalizeRotation(t *testing.T) {
	cases := map[int]int{0: 0, 90: 90, 180: 180, 270: 270, 360: 0, 450: 90, -90: 270, 44: 0, 46: 90, 314: 270, 316: 0}
	for in, want := range cases {
		if got := NormalizeRotation(in); got != want {
			t.Errorf("NormalizeRotation(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestMediaListRoundTripThroughScanner(t *testing.T) {
	list := MediaList{{URL: "https://cdn/a.jpg", Rotation: 90}}
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var scanned MediaList
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(scanned, list) {
		t.Errorf("Scan(Value()) = %#v, want %#v", scanned, list)
	}
}

func TestMediaListUnmarshalKeepsRotation(t *testing.T) {
	var payload struct {
		MediaFiles MediaList `json:"mediaFiles"`
	}
	if err := json.Unmarshal([]byte(`{"mediaFiles":[{"url":"a.jpg","rotation":45}]}`), &payload); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if payload.MediaFiles[0].Rotation != 45 {
		t.Errorf("rotation = %d, want 45 (validation happens at the boundary)", payload.MediaFiles[0].Rotation)
	}
}

func TestMediaListMarshalNil(t *testing.T) {
	b, err := json.Marshal(struct {
		M MediaList `json:"m"`
	}{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"m":[]}` {
		t.Errorf("got %s", b)
	}
}
