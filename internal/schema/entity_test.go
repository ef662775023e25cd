package schema

import (
	"testing"
)

func TestEntityHelpers(t *testing.T) {
	t.Parallel()

	cols := Orders.Columns()
	if cols[0] != "order_id" {
		t.Fatalf("first column = %q, want order_id", cols[0])
	}
	if len(cols) != len(Orders.Fields) {
		t.Fatalf("columns = %d, want %d", len(cols), len(Orders.Fields))
	}

	kinds := Orders.Kinds()
	if kinds["quantity"] != KindInt || kinds["unit_price"] != KindDecimal {
		t.Fatalf("kinds wrong: %v", kinds)
	}

	f, ok := Orders.Field("customer_id")
	if !ok || !f.Required {
		t.Fatalf("customer_id descriptor = %+v, %v", f, ok)
	}
	if _, ok := Orders.Field("nope"); ok {
		t.Fatal("unknown field should not resolve")
	}
}

func TestWithAliasesReplacesVocabulary(t *testing.T) {
	t.Parallel()

	recon := Orders.WithAliases(ReconciliationAliases)

	f, _ := recon.Field("order_id")
	if len(f.Aliases) != 1 || f.Aliases[0] != "transaction_ref" {
		t.Fatalf("order_id aliases = %v, want [transaction_ref]", f.Aliases)
	}
	// Fields without a reconciliation spelling carry no aliases at all.
	f, _ = recon.Field("tracking_number")
	if len(f.Aliases) != 0 {
		t.Fatalf("tracking_number aliases = %v, want none", f.Aliases)
	}
	// The original descriptor is untouched.
	f, _ = Orders.Field("order_id")
	if len(f.Aliases) != 1 || f.Aliases[0] != "ord_id" {
		t.Fatalf("Orders mutated: %v", f.Aliases)
	}
}

func TestEntitiesAreInDependencyOrder(t *testing.T) {
	t.Parallel()

	pos := map[string]int{}
	for i, e := range Entities {
		pos[e.Table] = i
	}
	for _, e := range Entities {
		for _, fk := range e.ForeignKeys {
			ref, ok := pos[fk.RefTable]
			if !ok {
				t.Fatalf("%s references unknown table %s", e.Table, fk.RefTable)
			}
			if ref >= pos[e.Table] {
				t.Fatalf("%s must come after %s in Entities", e.Table, fk.RefTable)
			}
		}
	}
}

func TestForeignKeysTargetKeyFields(t *testing.T) {
	t.Parallel()

	byTable := map[string]Entity{}
	for _, e := range Entities {
		byTable[e.Table] = e
	}
	for _, e := range Entities {
		for _, fk := range e.ForeignKeys {
			if _, ok := e.Field(fk.Field); !ok {
				t.Errorf("%s FK field %s not in field set", e.Table, fk.Field)
			}
			ref := byTable[fk.RefTable]
			if ref.Key != fk.RefField {
				t.Errorf("%s FK targets %s.%s, want the key %s", e.Table, fk.RefTable, fk.RefField, ref.Key)
			}
		}
	}
}
