package ddl

import (
	"strings"
	"testing"

	gddl "ecometl/internal/ddl"
	"ecometl/internal/schema"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind schema.Kind
		want string
	}{
		{schema.KindInt, "BIGINT"},
		{schema.KindBool, "BOOLEAN"},
		{schema.KindDecimal, "NUMERIC"},
		{schema.KindDate, "DATE"},
		{schema.KindDatetime, "TIMESTAMPTZ"},
		{schema.KindText, "TEXT"},
	}
	for _, tt := range tests {
		if got := MapType(tt.kind); got != tt.want {
			t.Errorf("MapType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestBuildCreateTableSQL_PostgresDialect(t *testing.T) {
	t.Parallel()

	td := gddl.TableDef{
		FQN: "public.orders",
		Columns: []gddl.ColumnDef{
			{Name: "order_id", SQLType: "TEXT", PrimaryKey: true},
			{Name: "customer_id", SQLType: "BIGINT", Nullable: true},
		},
		ForeignKeys: []gddl.ForeignKeyDef{
			{Column: "customer_id", RefTable: "public.customers", RefColumn: "customer_id"},
		},
	}
	got, err := BuildCreateTableSQL(td)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS \"public\".\"orders\" (\n" +
		"  \"order_id\" TEXT NOT NULL,\n" +
		"  \"customer_id\" BIGINT,\n" +
		"  PRIMARY KEY (\"order_id\"),\n" +
		"  FOREIGN KEY (\"customer_id\") REFERENCES \"public\".\"customers\" (\"customer_id\")\n" +
		");"
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFromEntity_MapsKinds(t *testing.T) {
	t.Parallel()

	e := schema.Entity{
		Name:  "customers",
		Table: "customers",
		Key:   "customer_id",
		Fields: []schema.Field{
			{Name: "customer_id", Kind: schema.KindInt},
			{Name: "registration_date", Kind: schema.KindDate},
			{Name: "age", Kind: schema.KindInt},
		},
		Indexes: [][]string{{"registration_date"}},
	}
	td, err := FromEntity(e)
	if err != nil {
		t.Fatalf("FromEntity() error = %v", err)
	}
	if td.Columns[0].SQLType != "BIGINT" || !td.Columns[0].PrimaryKey {
		t.Fatalf("key column = %+v", td.Columns[0])
	}
	if td.Columns[1].SQLType != "DATE" {
		t.Fatalf("date column = %+v", td.Columns[1])
	}
	if len(td.Indexes) != 1 {
		t.Fatalf("indexes = %v, want 1", td.Indexes)
	}
}

func TestBuildCreateIndexSQL_PostgresDialect(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateIndexSQL("public.orders", gddl.IndexDef{Columns: []string{"customer_id", "order_date"}})
	if err != nil {
		t.Fatalf("BuildCreateIndexSQL() error = %v", err)
	}
	if !strings.HasPrefix(got, "CREATE INDEX IF NOT EXISTS \"idx_orders_customer_id_order_date\"") {
		t.Fatalf("BuildCreateIndexSQL() = %q", got)
	}
}
