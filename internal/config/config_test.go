package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/santa/internal/models"
)

const sampleRoster = `
groups:
  - id: family
    name: Family Exchange
    budget: 50
    currency: "$"
    participants:
      - username: alice
        name: Alice
        password: red-sleigh
        exclude: [bob]
      - username: bob
        name: Bob
        password: green-elf
        exclude: [alice]
      - username: carol
        name: Carol
        password: tinsel
  - id: office
    name: Office Party
    budget: 20
    currency: "$"
    participants:
      - username: alice
        name: Alice
        password: red-sleigh
      - username: dan
        name: Dan
        password: mistletoe
`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}
	return path
}

func TestLoadRoster(t *testing.T) {
	groups, err := loadRoster(writeRoster(t, sampleRoster))
	if err != nil {
		t.Fatalf("loadRoster failed: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	family := groups[0]
	if family.ID != "family" || family.Budget != 50 {
		t.Errorf("unexpected group: %+v", family)
	}
	if len(family.Participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(family.Participants))
	}

	alice := family.Member("alice")
	if alice == nil {
		t.Fatal("alice missing from roster")
	}
	if alice.Password != "red-sleigh" {
		t.Errorf("alice password not parsed")
	}
	if len(alice.Exclude) != 1 || alice.Exclude[0] != "bob" {
		t.Errorf("alice exclusions: got %v, want [bob]", alice.Exclude)
	}

	exclusions := family.Exclusions()
	if len(exclusions) != 2 {
		t.Errorf("expected exclusions for alice and bob, got %v", exclusions)
	}
	if _, ok := exclusions["carol"]; ok {
		t.Error("carol has no exclusions but appears in the map")
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	if _, err := loadRoster(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateGroups(t *testing.T) {
	valid := func() []models.Group {
		return []models.Group{{
			ID: "g", Name: "G", Budget: 10, Currency: "$",
			Participants: []models.Participant{
				{Username: "a", Name: "A", Password: "pa"},
				{Username: "b", Name: "B", Password: "pb"},
			},
		}}
	}

	tests := []struct {
		name    string
		mutate  func([]models.Group) []models.Group
		wantErr string
	}{
		{
			name:   "valid roster passes",
			mutate: func(gs []models.Group) []models.Group { return gs },
		},
		{
			name:    "no groups",
			mutate:  func([]models.Group) []models.Group { return nil },
			wantErr: "no groups",
		},
		{
			name: "empty group id",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].ID = ""
				return gs
			},
			wantErr: "no id",
		},
		{
			name: "duplicate group id",
			mutate: func(gs []models.Group) []models.Group {
				return append(gs, gs[0])
			},
			wantErr: "duplicate group id",
		},
		{
			name: "zero budget",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].Budget = 0
				return gs
			},
			wantErr: "budget",
		},
		{
			name: "single participant",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].Participants = gs[0].Participants[:1]
				return gs
			},
			wantErr: "at least 2",
		},
		{
			name: "duplicate username",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].Participants[1].Username = "a"
				return gs
			},
			wantErr: "duplicate username",
		},
		{
			name: "missing password",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].Participants[0].Password = ""
				return gs
			},
			wantErr: "no password",
		},
		{
			name: "exclusion references stranger",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].Participants[0].Exclude = []string{"zed"}
				return gs
			},
			wantErr: "not in the group",
		},
		{
			name: "self-exclusion",
			mutate: func(gs []models.Group) []models.Group {
				gs[0].Participants[0].Exclude = []string{"a"}
				return gs
			},
			wantErr: "themselves",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroups(tt.mutate(valid()))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
