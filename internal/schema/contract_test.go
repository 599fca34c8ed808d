package schema

import "testing"

func TestEveryTableHasContract(t *testing.T) {
	for _, name := range TableNames {
		c, ok := Contracts[name]
		if !ok {
			t.Fatalf("no contract for table %q", name)
		}
		if c.Name != name {
			t.Fatalf("contract name = %q, want %q", c.Name, name)
		}
		if len(c.Fields) == 0 {
			t.Fatalf("contract %q has no fields", name)
		}
	}
	if len(Contracts) != len(TableNames) {
		t.Fatalf("contracts = %d, want %d", len(Contracts), len(TableNames))
	}
}

func TestContractFieldTypes(t *testing.T) {
	known := map[string]struct{}{"int": {}, "float": {}, "text": {}, "timestamp": {}}
	for name, c := range Contracts {
		for _, fld := range c.Fields {
			if _, ok := known[fld.Type]; !ok {
				t.Fatalf("%s.%s has unknown type %q", name, fld.Name, fld.Type)
			}
		}
	}
}

func TestMissingSourceErrorMessages(t *testing.T) {
	tbl := MissingSourceError{Table: "province"}
	if got := tbl.Error(); got != `missing source table "province"` {
		t.Fatalf("Error() = %q", got)
	}
	col := MissingSourceError{Table: "province", Column: "code"}
	if got := col.Error(); got != `missing required column "code" in source table "province"` {
		t.Fatalf("Error() = %q", got)
	}
}
