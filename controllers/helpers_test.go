package controllers

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFlexIDAcceptsNumberOrString(t *testing.T) {
	tests := []struct {
		raw     string
		want    FlexID
		wantErr bool
	}{
		{`{"eventId": 12}`, 12, false},
		{`{"eventId": "12"}`, 12, false},
		{`{"eventId": null}`, 0, false},
		{`{}`, 0, false},
		{`{"eventId": "on iki"}`, 0, true},
		{`{"eventId": -3}`, 0, true},
	}
	for _, tt := range tests {
		var req PendingEventActionRequest
		err := json.Unmarshal([]byte(tt.raw), &req)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.raw, err)
			continue
		}
		if !tt.wantErr && req.EventID != tt.want {
			t.Errorf("%s: id = %d, want %d", tt.raw, req.EventID, tt.want)
		}
	}
}

func TestCategorySelectionFallsBackToSingleID(t *testing.T) {
	tests := []struct {
		raw  string
		want []uint
	}{
		{`{"categoryIds": [2, 5]}`, []uint{2, 5}},
		{`{"categoryId": 4}`, []uint{4}},
		{`{"categoryIds": [1], "categoryId": 4}`, []uint{1}},
		{`{}`, nil},
	}
	for _, tt := range tests {
		var req EventRequest
		if err := json.Unmarshal([]byte(tt.raw), &req); err != nil {
			t.Fatalf("%s: %v", tt.raw, err)
		}
		if got := req.ids(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: ids = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
