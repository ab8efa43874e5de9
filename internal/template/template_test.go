package template

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_TopLevelRules(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want TopLevelRules
	}{
		"simple mandatory and optional": {
			text: "name: mandatory\nowner : optional\n",
			want: TopLevelRules{
				{Key: "name", Status: StatusMandatory},
				{Key: "owner", Status: StatusOptional},
			},
		},
		"status word is case-insensitive": {
			text: "name: MANDATORY\nowner: Optional\n",
			want: TopLevelRules{
				{Key: "name", Status: StatusMandatory},
				{Key: "owner", Status: StatusOptional},
			},
		},
		"whitespace around the colon is tolerated": {
			text: "name   :   mandatory\n",
			want: TopLevelRules{{Key: "name", Status: StatusMandatory}},
		},
		"unrecognized lines are skipped": {
			text: "# comment\nname: mandatory\nnot a rule line\nweird: maybe\n",
			want: TopLevelRules{{Key: "name", Status: StatusMandatory}},
		},
		"redefinition updates in place": {
			text: "name: mandatory\nname: optional\n",
			want: TopLevelRules{{Key: "name", Status: StatusOptional}},
		},
		"blank lines ignored": {
			text: "\n\nname: mandatory\n\n",
			want: TopLevelRules{{Key: "name", Status: StatusMandatory}},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			top, _ := Parse(tt.text)
			if len(top) != len(tt.want) {
				t.Fatalf("Parse() top = %v, want %v", top, tt.want)
			}
			for i, rule := range tt.want {
				if top[i] != rule {
					t.Errorf("rule %d = %v, want %v", i, top[i], rule)
				}
			}
		})
	}
}

func TestParse_NestedRules(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text       string
		parent     string
		wantNested []Rule
	}{
		"list items accumulate under one parent": {
			text:   "environments: mandatory\n  - name: mandatory\n  - region: optional\n",
			parent: "environments",
			wantNested: []Rule{
				{Key: "name", Status: StatusMandatory},
				{Key: "region", Status: StatusOptional},
			},
		},
		"plain indented lines nest under the current parent": {
			text:   "contact: mandatory\n  email: mandatory\n  phone: optional\n",
			parent: "contact",
			wantNested: []Rule{
				{Key: "email", Status: StatusMandatory},
				{Key: "phone", Status: StatusOptional},
			},
		},
		"new top-level key resets the list parent": {
			text:   "environments: mandatory\n  - name: mandatory\nowner: optional\n  - team: mandatory\n",
			parent: "owner",
			wantNested: []Rule{
				{Key: "team", Status: StatusMandatory},
			},
		},
		"tab indentation counts as indented": {
			text:   "environments: mandatory\n\t- name: mandatory\n",
			parent: "environments",
			wantNested: []Rule{
				{Key: "name", Status: StatusMandatory},
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, nested := Parse(tt.text)
			got := nested[tt.parent]
			if len(got) != len(tt.wantNested) {
				t.Fatalf("nested[%q] = %v, want %v", tt.parent, got, tt.wantNested)
			}
			for i, rule := range tt.wantNested {
				if got[i] != rule {
					t.Errorf("nested rule %d = %v, want %v", i, got[i], rule)
				}
			}
		})
	}
}

func TestParse_IndentedLinesWithoutParentIgnored(t *testing.T) {
	t.Parallel()

	top, nested := Parse("  - name: mandatory\n  orphan: optional\nname: mandatory\n")
	if len(top) != 1 || top[0].Key != "name" {
		t.Errorf("top = %v, want only 'name'", top)
	}
	if len(nested) != 0 {
		t.Errorf("nested = %v, want empty", nested)
	}
}

func TestTopLevelRules_Status(t *testing.T) {
	t.Parallel()

	top, _ := Parse("name: mandatory\nowner: optional\n")

	if status, ok := top.Status("name"); !ok || status != StatusMandatory {
		t.Errorf("Status(name) = %v, %v", status, ok)
	}
	if _, ok := top.Status("missing"); ok {
		t.Error("Status(missing) should not be defined")
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("missing template is fatal", func(t *testing.T) {
		t.Parallel()

		_, _, err := ParseFile(filepath.Join(t.TempDir(), "nope.yml"))
		if err == nil {
			t.Fatal("ParseFile() expected error for missing file")
		}
	})

	t.Run("reads rules from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "template.yml")
		writeFile(t, path, "name: mandatory\nenvironments: mandatory\n  - name: mandatory\n")

		top, nested, err := ParseFile(path)
		if err != nil {
			t.Fatalf("ParseFile() error = %v", err)
		}
		if len(top) != 2 {
			t.Errorf("top = %v, want 2 rules", top)
		}
		if len(nested["environments"]) != 1 {
			t.Errorf("nested = %v, want one rule under environments", nested)
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
