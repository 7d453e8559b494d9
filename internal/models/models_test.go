// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestAPIResponseEnvelope(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		resp     APIResponse
		contains []string
		absent   []string
	}{
		{
			name:     "success omits error",
			resp:     APIResponse{Status: "success", Data: ToggleResponse{CategoryID: "pizza", Active: true}, Metadata: Metadata{Timestamp: ts}},
			contains: []string{`"status":"success"`, `"category_id":"pizza"`, `"active":true`, `"timestamp":"2026-10-14T12:00:00Z"`},
			absent:   []string{`"error"`, `"request_id"`},
		},
		{
			name:     "error keeps null data",
			resp:     APIResponse{Status: "error", Metadata: Metadata{Timestamp: ts}, Error: &APIError{Code: "NO_CANDIDATES", Message: "none"}},
			contains: []string{`"data":null`, `"code":"NO_CANDIDATES"`},
			absent:   []string{`"details"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			out := string(raw)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("missing %s in %s", want, out)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(out, bad) {
					t.Errorf("unexpected %s in %s", bad, out)
				}
			}
		})
	}
}
