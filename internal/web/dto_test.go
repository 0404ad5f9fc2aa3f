package web

import (
	"testing"

	"github.com/google/uuid"
)

func Test_createMatch_Validate(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	p3 := uuid.New()
	tests := []struct {
		name    string
		match   createMatch
		wantErr bool
	}{
		{
			name: "two players",
			match: createMatch{Results: []createMatchResult{
				{PlayerID: p1, Place: 1},
				{PlayerID: p2, Place: 2},
			}},
			wantErr: false,
		},
		{
			name: "three players with tie",
			match: createMatch{Results: []createMatchResult{
				{PlayerID: p1, Place: 1},
				{PlayerID: p2, Place: 1},
				{PlayerID: p3, Place: 3},
			}},
			wantErr: false,
		},
		{
			name: "single player",
			match: createMatch{Results: []createMatchResult{
				{PlayerID: p1, Place: 1},
			}},
			wantErr: true,
		},
		{
			name: "duplicate player",
			match: createMatch{Results: []createMatchResult{
				{PlayerID: p1, Place: 1},
				{PlayerID: p1, Place: 2},
			}},
			wantErr: true,
		},
		{
			name: "missing player id",
			match: createMatch{Results: []createMatchResult{
				{PlayerID: p1, Place: 1},
				{PlayerID: uuid.Nil, Place: 2},
			}},
			wantErr: true,
		},
		{
			name: "zero place",
			match: createMatch{Results: []createMatchResult{
				{PlayerID: p1, Place: 0},
				{PlayerID: p2, Place: 1},
			}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.match.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_createMatch_convertToDomainMatch(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	match := createMatch{Results: []createMatchResult{
		{PlayerID: p1, Place: 1},
		{PlayerID: p2, Place: 2},
	}}
	converted := match.convertToDomainMatch()
	if len(converted.Results) != 2 {
		t.Fatalf("want 2 results, got %d", len(converted.Results))
	}
	if converted.Results[0].Player.ID != p1 || converted.Results[0].Rank != 1 {
		t.Errorf("unexpected first result: %+v", converted.Results[0])
	}
	if converted.Results[1].Player.ID != p2 || converted.Results[1].Rank != 2 {
		t.Errorf("unexpected second result: %+v", converted.Results[1])
	}
	if converted.Date.IsZero() {
		t.Error("match date is not set")
	}
}
