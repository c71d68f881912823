// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package boardpb

import (
	"testing"

	"sportsmatrix/cli/internal/wire"
)

func TestMessagesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		msg   wire.Message
		fresh func() wire.Message
	}{
		{"status default", &Status{}, func() wire.Message { return &Status{} }},
		{"status set", &Status{Enabled: true, ScrollEnabled: true}, func() wire.Message { return &Status{} }},
		{"set status nil", &SetStatusReq{}, func() wire.Message { return &SetStatusReq{} }},
		{"set status", &SetStatusReq{Status: &Status{Enabled: true}}, func() wire.Message { return &SetStatusReq{} }},
		{"version", &VersionResp{Version: "v1.2.3"}, func() wire.Message { return &VersionResp{} }},
		{"screen", &ScreenStatusResp{ScreenOn: true, WebboardOn: true}, func() wire.Message { return &ScreenStatusResp{} }},
		{"set all", &SetAllReq{Enabled: true}, func() wire.Message { return &SetAllReq{} }},
		{"jump", &JumpReq{Board: "clock"}, func() wire.Message { return &JumpReq{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fresh()
			if err := wire.Unmarshal(wire.Marshal(tt.msg), got); err != nil {
				t.Fatalf("binary: %v", err)
			}
			if !wire.Equal(tt.msg, got) {
				t.Errorf("binary round trip = %+v, want %+v", got, tt.msg)
			}

			got = tt.fresh()
			wire.FromPlainObject(got, wire.ToPlainObject(tt.msg))
			if !wire.Equal(tt.msg, got) {
				t.Errorf("plain object round trip = %+v, want %+v", got, tt.msg)
			}
		})
	}
}

func TestDefaultStatusEncoding(t *testing.T) {
	if b := wire.Marshal(&Status{}); len(b) != 0 {
		t.Errorf("Marshal(Status{}) = %x, want empty", b)
	}
	js, err := wire.MarshalJSON(&Status{})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"enabled":false,"scrollEnabled":false}`; string(js) != want {
		t.Errorf("MarshalJSON(Status{}) = %s, want %s", js, want)
	}
}

func TestJSONProjections(t *testing.T) {
	tests := []struct {
		msg  wire.Message
		want string
	}{
		{&JumpReq{Board: "clock"}, `{"board":"clock"}`},
		{&SetAllReq{Enabled: true}, `{"enabled":true}`},
		{&SetStatusReq{Status: &Status{Enabled: true}}, `{"status":{"enabled":true,"scrollEnabled":false}}`},
		{&ScreenStatusResp{ScreenOn: true}, `{"screenOn":true,"webboardOn":false}`},
		{&VersionResp{}, `{"version":""}`},
	}
	for _, tt := range tests {
		got, err := wire.MarshalJSON(tt.msg)
		if err != nil {
			t.Fatalf("MarshalJSON(%T) error = %v", tt.msg, err)
		}
		if string(got) != tt.want {
			t.Errorf("MarshalJSON(%T) = %s, want %s", tt.msg, got, tt.want)
		}
	}
}

func TestStatusAcceptsServerJSON(t *testing.T) {
	// Twirp servers omit false fields and may use proto names.
	var st Status
	if err := wire.UnmarshalJSON([]byte(`{"scroll_enabled":true}`), &st); err != nil {
		t.Fatal(err)
	}
	if st.Enabled || !st.ScrollEnabled {
		t.Errorf("got %+v", st)
	}
}

func TestPaths(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{BoardPath("clock", MethodGetStatus), "clock/board.v1.BasicBoard/GetStatus"},
		{BoardPath("/api/stocks/", MethodSetStatus), "api/stocks/board.v1.BasicBoard/SetStatus"},
		{MatrixPath(MethodJump), "matrix.v1.Sportsmatrix/Jump"},
		{MatrixPath(MethodGetScreenStatus), "matrix.v1.Sportsmatrix/GetScreenStatus"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("path = %q, want %q", tt.got, tt.want)
		}
	}
}
